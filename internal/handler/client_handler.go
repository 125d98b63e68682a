package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/medgear/medgear_api/internal/repository"
	"github.com/medgear/medgear_api/internal/utils"
)

// ClientHandler serves the back-office clients view: registered customers
// with their quote request counts. Gated on the access_clients privilege.
type ClientHandler struct {
	customers *repository.CustomerRepository
}

// NewClientHandler constructs a ClientHandler.
func NewClientHandler(customers *repository.CustomerRepository) *ClientHandler {
	return &ClientHandler{customers: customers}
}

// ListClients handles GET /v1/admin/clients
func (h *ClientHandler) ListClients(c *gin.Context) {
	clients, err := h.customers.ListWithQuoteCounts()
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve clients")
		return
	}

	utils.Success(c, 200, "Clients retrieved", gin.H{
		"clients": clients,
		"total":   len(clients),
	})
}
