package handler

import (
	"net/http"
	"strconv"

	"mealdash/internal/config"
	"mealdash/internal/middleware"
	"mealdash/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Catalog management for staff.
type AdminMealHandler struct {
	uc       *usecase.MealUsecase
	validate *validator.Validate
}

// DI
func NewAdminMealHandler(uc *usecase.MealUsecase) *AdminMealHandler {
	return &AdminMealHandler{uc: uc, validate: validator.New()}
}

type AdminMealRequest struct {
	Name            string `json:"name" validate:"required,max=120"`
	Description     string `json:"description" validate:"max=2000"`
	Category        string `json:"category" validate:"required"`
	Price           int64  `json:"price" validate:"required,min=1"`
	ImageURL        string `json:"image_url" validate:"max=500"`
	IsAvailable     bool   `json:"is_available"`
	PreparationTime int    `json:"preparation_time" validate:"min=0"`
	Calories        int    `json:"calories" validate:"min=0"`
	IsVegetarian    bool   `json:"is_vegetarian"`
	IsVegan         bool   `json:"is_vegan"`
}

func (h *AdminMealHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/admin/meals")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.AdminRoleGuard())

	g.POST("", h.create)
	g.PATCH("/:id", h.update)
	g.DELETE("/:id", h.delete)
}

func (h *AdminMealHandler) create(c echo.Context) error {
	actorID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req AdminMealRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.AdminCreate(c.Request().Context(), actorID, toAdminMealInput(req))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *AdminMealHandler) update(c echo.Context) error {
	actorID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	mealID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req AdminMealRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.AdminUpdate(c.Request().Context(), actorID, mealID, toAdminMealInput(req))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *AdminMealHandler) delete(c echo.Context) error {
	actorID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	mealID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.AdminDelete(c.Request().Context(), actorID, mealID); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func toAdminMealInput(req AdminMealRequest) usecase.AdminMealInput {
	return usecase.AdminMealInput{
		Name:            req.Name,
		Description:     req.Description,
		Category:        req.Category,
		Price:           req.Price,
		ImageURL:        req.ImageURL,
		IsAvailable:     req.IsAvailable,
		PreparationTime: req.PreparationTime,
		Calories:        req.Calories,
		IsVegetarian:    req.IsVegetarian,
		IsVegan:         req.IsVegan,
	}
}
