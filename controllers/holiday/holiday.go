package holiday

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"seat-booking/logger"
	holidayModel "seat-booking/models/holiday"
	"seat-booking/types"
	holidayTypes "seat-booking/types/holiday"
	"seat-booking/utils"
)

type HolidayController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
}

func NewHolidayController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *HolidayController {
	return &HolidayController{DB: db, Logger: asyncLogger}
}

// Store declares a holiday. No uniqueness or past-date check; administrators
// own the calendar.
func (hc *HolidayController) Store(c *fiber.Ctx) error {
	var req holidayTypes.HolidayCreateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	h := holidayModel.Holiday{
		Date:   req.ParsedDate(),
		Reason: req.Reason,
	}
	if err := hc.DB.Create(&h).Error; err != nil {
		logger.Error("Failed to create holiday", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Server error",
		})
	}

	hc.Logger.Log(utils.CreateSanitizedLogEntry(c))

	logger.Success("Holiday created: " + req.Date)
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Holiday created successfully",
		Data:    h,
	})
}

// Index lists upcoming holidays. Rows are fetched and then filtered against
// the current moment, so a holiday dated today (stored at midnight) is
// already past once the day has started.
func (hc *HolidayController) Index(c *fiber.Ctx) error {
	var holidays []holidayModel.Holiday
	if err := hc.DB.Order("date").Find(&holidays).Error; err != nil {
		logger.Error("Failed to list holidays", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Server error",
		})
	}

	now := time.Now()
	upcoming := make([]holidayModel.Holiday, 0, len(holidays))
	for _, h := range holidays {
		if !h.Date.Before(now) {
			upcoming = append(upcoming, h)
		}
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Holidays fetched successfully",
		Data:    upcoming,
	})
}

// Destroy removes a holiday by id.
func (hc *HolidayController) Destroy(c *fiber.Ctx) error {
	id64, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid holiday id",
		})
	}

	var h holidayModel.Holiday
	if err := hc.DB.First(&h, uint(id64)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Holiday not found",
			})
		}
		logger.Error("Failed to find holiday", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Server error",
		})
	}

	if err := hc.DB.Delete(&h).Error; err != nil {
		logger.Error("Failed to delete holiday", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Server error",
		})
	}

	logger.Success("Holiday deleted")
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Holiday deleted successfully",
	})
}
