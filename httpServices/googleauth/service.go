package googleauth

import (
	"context"
	"fmt"

	"google.golang.org/api/idtoken"
)

// Verifier checks Google ID tokens against Google's public keys and the
// configured OAuth client ID (audience).
type Verifier interface {
	Verify(ctx context.Context, rawToken string) (*Payload, error)
}

// Payload is the subset of the verified token this service cares about.
type Payload struct {
	Email         string
	EmailVerified bool
	GivenName     string
	FamilyName    string
}

type Client struct {
	audience string
}

func NewClient(clientID string) *Client {
	return &Client{audience: clientID}
}

func (c *Client) Verify(ctx context.Context, rawToken string) (*Payload, error) {
	payload, err := idtoken.Validate(ctx, rawToken, c.audience)
	if err != nil {
		return nil, fmt.Errorf("validate google token: %w", err)
	}

	out := &Payload{}
	if email, ok := payload.Claims["email"].(string); ok {
		out.Email = email
	}
	if verified, ok := payload.Claims["email_verified"].(bool); ok {
		out.EmailVerified = verified
	}
	if given, ok := payload.Claims["given_name"].(string); ok {
		out.GivenName = given
	}
	if family, ok := payload.Claims["family_name"].(string); ok {
		out.FamilyName = family
	}

	if out.Email == "" {
		return nil, fmt.Errorf("google token carries no email claim")
	}

	return out, nil
}
