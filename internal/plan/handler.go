package plan

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/lucsky/cuid"
)

type Handler struct {
	service  *Service
	validate *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
	}
}

type mealInput struct {
	Date string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Time string `json:"time" validate:"omitempty,datetime=15:04"`
}

type createPlanRequest struct {
	MealsPlanningAmount int         `json:"mealsPlanningAmount" validate:"required,min=1,max=5"`
	PriceRange          []float64   `json:"priceRange" validate:"required,len=2,dive,gte=0"`
	TotalPlannedBudgets float64     `json:"totalPlannedBudgets" validate:"required,gt=0"`
	WithBeverage        bool        `json:"withBeverage"`
	SelectedCanteens    []string    `json:"selectedCanteens"`
	Meals               []mealInput `json:"meals" validate:"omitempty,max=5,dive"`
	Filters             Filters     `json:"filters"`
}

// --------------------------------------------------
// Create plan: encode the constraint token, mint a
// fresh plan id, hand back the shareable path
// --------------------------------------------------
func (h *Handler) CreatePlan(c *gin.Context) {
	var req createPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cons := Constraints{
		PriceRange:          [2]float64{req.PriceRange[0], req.PriceRange[1]},
		SelectedCanteens:    req.SelectedCanteens,
		MealsPlanningAmount: req.MealsPlanningAmount,
		WithBeverage:        req.WithBeverage,
		TotalPlannedBudgets: req.TotalPlannedBudgets,
		Filters:             req.Filters,
	}
	for i := 0; i < req.MealsPlanningAmount; i++ {
		slot := MealSlot{MealNumber: i}
		if i < len(req.Meals) {
			slot.Date = req.Meals[i].Date
			slot.Time = req.Meals[i].Time
			if slot.Date != "" {
				slot.DayOfWeek = weekdayOf(slot.Date)
			}
		}
		cons.Meals = append(cons.Meals, slot)
	}

	token, err := EncodeToken(cons)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not encode plan"})
		return
	}

	planID := cuid.New()
	c.JSON(http.StatusOK, gin.H{
		"token":  token,
		"planId": planID,
		"path":   "/plan/" + token + "/" + planID,
	})
}

// --------------------------------------------------
// Fetch plan: decode, generate deterministically.
// "Try again" is the same token with a new plan id.
// --------------------------------------------------
func (h *Handler) GetPlan(c *gin.Context) {
	encodedParams := c.Param("encodedParams")
	planID := c.Param("planId")
	if encodedParams == "" || planID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing parameters"})
		return
	}

	cons, err := DecodeToken(encodedParams)
	if err != nil {
		if errors.Is(err, ErrMalformedToken) {
			// Bad token is a client problem; send them back to a safe view.
			c.Redirect(http.StatusFound, "/")
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not decode plan"})
		return
	}

	generated, err := h.service.GeneratePlan(c.Request.Context(), cons, planID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate plan"})
		return
	}

	c.JSON(http.StatusOK, generated)
}
