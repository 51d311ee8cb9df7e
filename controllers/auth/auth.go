package auth

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"seat-booking/config"
	"seat-booking/httpServices/googleauth"
	"seat-booking/logger"
	internModel "seat-booking/models/intern"
	"seat-booking/types"
	authTypes "seat-booking/types/auth"
	"seat-booking/utils"
)

type AuthController struct {
	db             *gorm.DB
	cfg            *config.Config
	google         googleauth.Verifier
	loggerInstance *logger.AsyncLogger
}

func NewAuthController(db *gorm.DB, cfg *config.Config, google googleauth.Verifier, asyncLogger *logger.AsyncLogger) *AuthController {
	return &AuthController{db: db, cfg: cfg, google: google, loggerInstance: asyncLogger}
}

// Signup registers an intern with a hashed credential. Email and intern ID
// are unique; a duplicate comes back as 409.
func (h *AuthController) Signup(c *fiber.Ctx) error {
	var req authTypes.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: fmt.Sprintf("Error parsing request body: %v", err),
			Status:  fiber.StatusBadRequest,
		})
	}

	if validationErr := req.Validate(); validationErr != "" {
		logger.Error(validationErr, nil)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: validationErr,
			Status:  fiber.StatusBadRequest,
		})
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Server error",
			Status:  fiber.StatusInternalServerError,
		})
	}

	newIntern := internModel.Intern{
		InternID:  req.InternID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  hash,
		Role:      internModel.RoleIntern,
	}

	if err := h.db.Create(&newIntern).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
				Message: "An intern with this email or intern ID already exists",
				Status:  fiber.StatusConflict,
			})
		}
		logger.Error("Failed to create intern", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Server error",
			Status:  fiber.StatusInternalServerError,
		})
	}

	h.loggerInstance.Log(utils.CreateSanitizedLogEntry(c))

	logger.Success("Intern registered successfully: " + newIntern.Email)
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Message: "Intern registered successfully!",
		Status:  fiber.StatusCreated,
	})
}

// Login checks the credential and issues a one-hour session token whose
// subject is the intern's row ID.
func (h *AuthController) Login(c *fiber.Ctx) error {
	var req authTypes.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: "Invalid request payload",
			Status:  fiber.StatusBadRequest,
		})
	}

	if validationErr := req.Validate(); validationErr != "" {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: validationErr,
			Status:  fiber.StatusBadRequest,
		})
	}

	var in internModel.Intern
	if err := h.db.Where("email = ?", req.Email).First(&in).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Message: "Invalid credentials",
				Status:  fiber.StatusUnauthorized,
			})
		}
		logger.Error("Error fetching intern", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Server error",
			Status:  fiber.StatusInternalServerError,
		})
	}

	if in.Password == "" || !utils.CheckPassword(in.Password, req.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Message: "Invalid credentials",
			Status:  fiber.StatusUnauthorized,
		})
	}

	token, err := utils.IssueSessionToken(h.cfg.JWTSecret, in.ID, in.Role, h.cfg.TokenExpiry)
	if err != nil {
		logger.Error("Failed to sign session token", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Server error",
			Status:  fiber.StatusInternalServerError,
		})
	}

	h.loggerInstance.Log(utils.CreateSanitizedLogEntry(c))

	logger.Success("Intern logged in successfully: " + in.Email)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Login successful",
		Status:  fiber.StatusOK,
		Token:   token,
	})
}

// GoogleLogin verifies the Google ID token. An email with no local intern is
// signalled back as a new user needing profile completion; no token issued.
func (h *AuthController) GoogleLogin(c *fiber.Ctx) error {
	var req authTypes.GoogleLoginRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: "Invalid request payload",
			Status:  fiber.StatusBadRequest,
		})
	}

	if validationErr := req.Validate(); validationErr != "" {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: validationErr,
			Status:  fiber.StatusBadRequest,
		})
	}

	payload, err := h.google.Verify(c.Context(), req.Token)
	if err != nil {
		logger.Error("Google token verification failed", err)
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Message: "Google login failed",
			Status:  fiber.StatusUnauthorized,
		})
	}

	if !payload.EmailVerified {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Message: "Google account email is not verified",
			Status:  fiber.StatusUnauthorized,
		})
	}

	var in internModel.Intern
	if err := h.db.Where("email = ?", payload.Email).First(&in).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Hand the profile fields Google already knows back to the client
			// so the completion form comes prefilled.
			return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
				Message: "New user, profile completion required",
				Status:  fiber.StatusOK,
				Data: fiber.Map{
					"is_new_user": true,
					"email":       payload.Email,
					"first_name":  payload.GivenName,
					"last_name":   payload.FamilyName,
				},
			})
		}
		logger.Error("Error fetching intern", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Server error",
			Status:  fiber.StatusInternalServerError,
		})
	}

	token, err := utils.IssueSessionToken(h.cfg.JWTSecret, in.ID, in.Role, h.cfg.TokenExpiry)
	if err != nil {
		logger.Error("Failed to sign session token", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Server error",
			Status:  fiber.StatusInternalServerError,
		})
	}

	logger.Success("Intern logged in with Google: " + in.Email)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Login successful",
		Status:  fiber.StatusOK,
		Token:   token,
		Data:    fiber.Map{"is_new_user": false},
	})
}

// CompleteProfile upserts an intern by email with the supplied profile fields
// and issues a session token. This is the second step of the federated flow.
func (h *AuthController) CompleteProfile(c *fiber.Ctx) error {
	var req authTypes.CompleteProfileRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: "Invalid request payload",
			Status:  fiber.StatusBadRequest,
		})
	}

	if validationErr := req.Validate(); validationErr != "" {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: validationErr,
			Status:  fiber.StatusBadRequest,
		})
	}

	var in internModel.Intern
	err := h.db.Where("email = ?", req.Email).First(&in).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		in = internModel.Intern{
			InternID:  req.InternID,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Role:      internModel.RoleIntern,
		}
		if err := h.db.Create(&in).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
					Message: "An intern with this intern ID already exists",
					Status:  fiber.StatusConflict,
				})
			}
			logger.Error("Failed to create intern", err)
			return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
				Message: "Failed to update intern details",
				Status:  fiber.StatusInternalServerError,
			})
		}
	case err != nil:
		logger.Error("Error fetching intern", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Server error",
			Status:  fiber.StatusInternalServerError,
		})
	default:
		in.InternID = req.InternID
		in.FirstName = req.FirstName
		in.LastName = req.LastName
		if err := h.db.Save(&in).Error; err != nil {
			logger.Error("Failed to update intern", err)
			return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
				Message: "Failed to update intern details",
				Status:  fiber.StatusInternalServerError,
			})
		}
	}

	token, err := utils.IssueSessionToken(h.cfg.JWTSecret, in.ID, in.Role, h.cfg.TokenExpiry)
	if err != nil {
		logger.Error("Failed to sign session token", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Server error",
			Status:  fiber.StatusInternalServerError,
		})
	}

	h.loggerInstance.Log(utils.CreateSanitizedLogEntry(c))

	logger.Success("Intern profile completed: " + in.Email)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Intern details updated",
		Status:  fiber.StatusOK,
		Token:   token,
	})
}
