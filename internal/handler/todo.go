package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dev-singh-05/gymers/internal/store"
	"github.com/dev-singh-05/gymers/internal/util"

	"github.com/gin-gonic/gin"
)

// TodoHandler serves the navbar checklist widget.
type TodoHandler struct {
	Todos *store.TodoStore
}

func NewTodoHandler(todos *store.TodoStore) *TodoHandler {
	return &TodoHandler{Todos: todos}
}

func (h *TodoHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	todos, err := h.Todos.List(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list todos")
		return
	}

	out := make([]gin.H, 0, len(todos))
	for _, t := range todos {
		out = append(out, gin.H{
			"id":         t.ID,
			"text":       t.Text,
			"completed":  t.Completed,
			"created_at": t.CreatedAt,
		})
	}
	util.Success(c, util.Response{"todos": out})
}

type addTodoReq struct {
	Text string `json:"text" binding:"required,max=512"`
}

func (h *TodoHandler) Add(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req addTodoReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	todo, err := h.Todos.Add(user.ID, req.Text)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	util.Success(c, util.Response{
		"todo": gin.H{
			"id":         todo.ID,
			"text":       todo.Text,
			"completed":  todo.Completed,
			"created_at": todo.CreatedAt,
		},
	})
}

type toggleTodoReq struct {
	// the desired value, not a flip; the caller sends the negation
	Completed bool `json:"completed"`
}

func (h *TodoHandler) Toggle(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	todoID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid todo id")
		return
	}

	var req toggleTodoReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	if err := h.Todos.Toggle(user.ID, uint(todoID), req.Completed); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "todo not found")
			return
		}
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to update todo")
		return
	}
	util.Success(c, util.Response{"message": "updated"})
}

func (h *TodoHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	todoID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid todo id")
		return
	}

	if err := h.Todos.Delete(user.ID, uint(todoID)); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "todo not found")
			return
		}
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete todo")
		return
	}
	util.Success(c, util.Response{"message": "deleted"})
}
