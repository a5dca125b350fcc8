package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/daycare-api/internal/access"
	"github.com/noah-isme/daycare-api/internal/models"
	"github.com/noah-isme/daycare-api/internal/service"
	"github.com/noah-isme/daycare-api/pkg/response"
)

type contactService interface {
	Submit(ctx context.Context, req service.SubmitContactRequest) (*models.Contact, error)
	List(ctx context.Context, actor access.Identity, filter models.ContactFilter) ([]models.Contact, models.Pagination, error)
	Get(ctx context.Context, actor access.Identity, id string) (*models.Contact, error)
	UpdateStatus(ctx context.Context, actor access.Identity, id string, req service.UpdateContactStatusRequest) (*models.Contact, error)
	Delete(ctx context.Context, actor access.Identity, id string) error
}

// ContactHandler exposes the public contact form and its staff inbox.
type ContactHandler struct {
	service contactService
}

// NewContactHandler constructs handler.
func NewContactHandler(svc contactService) *ContactHandler {
	return &ContactHandler{service: svc}
}

// Submit godoc
// @Summary Submit the contact form
// @Tags Contacts
// @Accept json
// @Produce json
// @Param payload body service.SubmitContactRequest true "Contact payload"
// @Success 201 {object} models.Contact
// @Failure 429 {object} response.ErrorBody
// @Router /contacts [post]
func (h *ContactHandler) Submit(c *gin.Context) {
	var req service.SubmitContactRequest
	if !bindJSON(c, &req, "invalid contact payload") {
		return
	}
	item, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Message sent successfully", "contact", item)
}

// List godoc
// @Summary List contact messages
// @Tags Contacts
// @Produce json
// @Security BearerAuth
// @Param status query string false "new, read or replied"
// @Param search query string false "Search term"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {array} models.Contact
// @Router /contacts [get]
func (h *ContactHandler) List(c *gin.Context) {
	page := pageParams(c)
	filter := models.ContactFilter{Search: c.Query("search"), Page: page.Number, Limit: page.Limit}
	if status := c.Query("status"); status != "" {
		s := models.ContactStatus(status)
		filter.Status = &s
	}
	items, pagination, err := h.service.List(c.Request.Context(), identity(c), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, "Contacts retrieved successfully", "contacts", items, pagination)
}

// Get godoc
// @Summary Get contact message
// @Description A new message is marked read when first opened
// @Tags Contacts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Contact ID"
// @Success 200 {object} models.Contact
// @Router /contacts/{id} [get]
func (h *ContactHandler) Get(c *gin.Context) {
	item, err := h.service.Get(c.Request.Context(), identity(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Contact retrieved successfully", "contact", item)
}

// UpdateStatus godoc
// @Summary Update contact status
// @Tags Contacts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Contact ID"
// @Param payload body service.UpdateContactStatusRequest true "Status payload"
// @Success 200 {object} models.Contact
// @Failure 409 {object} response.ErrorBody
// @Router /contacts/{id}/status [put]
func (h *ContactHandler) UpdateStatus(c *gin.Context) {
	var req service.UpdateContactStatusRequest
	if !bindJSON(c, &req, "invalid status payload") {
		return
	}
	item, err := h.service.UpdateStatus(c.Request.Context(), identity(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Contact status updated successfully", "contact", item)
}

// Delete godoc
// @Summary Delete contact message
// @Tags Contacts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Contact ID"
// @Success 200 {object} map[string]string
// @Router /contacts/{id} [delete]
func (h *ContactHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), identity(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Contact deleted successfully")
}
