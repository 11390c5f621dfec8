package handler

import (
	"net/http"

	"github.com/dev-singh-05/gymers/internal/cart"
	"github.com/dev-singh-05/gymers/internal/models"
	"github.com/dev-singh-05/gymers/internal/store"
	"github.com/dev-singh-05/gymers/internal/util"

	"github.com/gin-gonic/gin"
)

// ProgramHandler serves program enrollment. The cart is a write-through
// mirror of the store: join writes both, leave removes from both, and
// reads of the authoritative list always come from the store.
type ProgramHandler struct {
	Programs *store.ProgramStore
	Cart     *cart.Cart
}

func NewProgramHandler(programs *store.ProgramStore, c *cart.Cart) *ProgramHandler {
	return &ProgramHandler{Programs: programs, Cart: c}
}

type joinProgramReq struct {
	ProgramID   string `json:"program_id" binding:"required,max=64"`
	ProgramName string `json:"program_name" binding:"required,max=128"`
	Price       int64  `json:"price"`
}

// Join enrolls the user. Double-joins are idempotent and reactivation
// keeps the original row.
func (h *ProgramHandler) Join(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req joinProgramReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}
	if err := util.ValidatePrice(req.Price); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	up, err := h.Programs.Join(user.ID, req.ProgramID, req.ProgramName, req.Price)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to join program")
		return
	}

	h.Cart.Add(user.ID, cart.Item{ID: up.ProgramID, Name: up.ProgramName, Price: up.Price})

	util.Success(c, util.Response{
		"program": programJSON(up),
	})
}

// Leave soft-deletes the enrollment. Leaving a program never joined is
// a clean no-op.
func (h *ProgramHandler) Leave(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	programID := c.Param("id")

	if err := h.Programs.Deactivate(user.ID, programID); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to leave program")
		return
	}

	h.Cart.Remove(user.ID, programID)

	util.Success(c, util.Response{"message": "left program"})
}

// List returns the user's active enrollments, newest first.
func (h *ProgramHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	programs, err := h.Programs.UserPrograms(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list programs")
		return
	}

	out := make([]gin.H, 0, len(programs))
	for i := range programs {
		out = append(out, programJSON(&programs[i]))
	}
	util.Success(c, util.Response{"programs": out})
}

// Joined reports whether the user has an active enrollment.
func (h *ProgramHandler) Joined(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	joined, err := h.Programs.IsJoined(user.ID, c.Param("id"))
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to check program")
		return
	}
	util.Success(c, util.Response{"joined": joined})
}

// CartView returns the ephemeral cart mirror: instant feedback only,
// never authoritative.
func (h *ProgramHandler) CartView(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	util.Success(c, util.Response{
		"items":       h.Cart.Items(user.ID),
		"count":       h.Cart.Count(user.ID),
		"total_price": h.Cart.TotalPrice(user.ID),
	})
}

func programJSON(up *models.UserProgram) gin.H {
	return gin.H{
		"id":           up.ID,
		"program_id":   up.ProgramID,
		"program_name": up.ProgramName,
		"price":        up.Price,
		"joined_at":    up.JoinedAt,
		"is_active":    up.IsActive,
	}
}
