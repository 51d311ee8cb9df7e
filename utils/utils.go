package utils

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jinzhu/now"
	"golang.org/x/crypto/bcrypt"

	"seat-booking/types"
)

// HashPassword returns the bcrypt hash of a plaintext password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether the plaintext matches the stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// SessionClaims is the payload of a session token: the intern's row ID as
// subject plus an explicit role claim checked on admin routes.
type SessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// IssueSessionToken signs an HS256 token for the given intern.
func IssueSessionToken(secret string, internID uint, role string, expiry time.Duration) (string, error) {
	claims := SessionClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", internID),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseSessionToken verifies signature and expiry and returns the claims.
func ParseSessionToken(secret, tokenStr string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// SubjectID parses the numeric intern ID out of the subject claim.
func (sc *SessionClaims) SubjectID() (uint, error) {
	var id uint
	if _, err := fmt.Sscanf(sc.Subject, "%d", &id); err != nil {
		return 0, fmt.Errorf("invalid subject claim %q", sc.Subject)
	}
	return id, nil
}

// BeginningOfDay truncates a timestamp to UTC midnight of the same date.
func BeginningOfDay(t time.Time) time.Time {
	return now.With(t.UTC()).BeginningOfDay()
}

// Today returns UTC midnight of the current day.
func Today() time.Time {
	return BeginningOfDay(time.Now())
}

// sanitizeRequestBody strips credentials out of a JSON request body before it
// is persisted by the async logger.
func sanitizeRequestBody(c *fiber.Ctx) string {
	body := string(c.Body())
	if !strings.Contains(body, "password") {
		return body
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(c.Body(), &payload); err != nil {
		return "[UNPARSEABLE_BODY_WITH_CREDENTIALS]"
	}
	if _, ok := payload["password"]; ok {
		payload["password"] = "[REDACTED]"
	}
	if sanitized, err := json.Marshal(payload); err == nil {
		return string(sanitized)
	}
	return "[BODY_WITH_CREDENTIALS]"
}

// CreateSanitizedLogEntry deep-copies request data into a LogEntry so the
// async logger never holds references into fiber's recycled buffers.
func CreateSanitizedLogEntry(c *fiber.Ctx) types.LogEntry {
	method := string([]byte(c.Method()))
	url := string([]byte(c.OriginalURL()))
	requestBody := sanitizeRequestBody(c)
	responseBody := string(append([]byte(nil), c.Response().Body()...))

	return types.LogEntry{
		Method:       method,
		URL:          url,
		RequestBody:  requestBody,
		ResponseBody: responseBody,
		StatusCode:   c.Response().StatusCode(),
		CreatedAt:    time.Now(),
	}
}
