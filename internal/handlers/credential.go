package handlers

import (
	"errors"
	"log/slog"

	"github.com/dimitrije/credential-vault/internal/middleware"
	"github.com/dimitrije/credential-vault/internal/vault"
	"github.com/dimitrije/credential-vault/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

type CredentialHandler struct {
	credentialService CredentialServiceInterface
	logger            *slog.Logger
}

func NewCredentialHandler(credentialService CredentialServiceInterface, logger *slog.Logger) *CredentialHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CredentialHandler{
		credentialService: credentialService,
		logger:            logger,
	}
}

func (h *CredentialHandler) List(c *drift.Context) {
	id := middleware.GetIdentity(c)
	if id == "" {
		c.Unauthorized("not authenticated")
		return
	}

	records, err := h.credentialService.GetCredentials(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("failed to list credentials", "identity", id, "error", err)
		c.InternalServerError("failed to list credentials")
		return
	}

	response := make([]dto.CredentialResponse, 0, len(records))
	for _, r := range records {
		response = append(response, dto.CredentialResponse{
			Name:     r.Name,
			Username: r.Username,
			Password: r.Password,
			Note:     r.Note,
		})
	}

	_ = c.JSON(200, response)
}

func (h *CredentialHandler) Add(c *drift.Context) {
	id := middleware.GetIdentity(c)
	if id == "" {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.AddCredentialsRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	err := h.credentialService.AddCredentials(c.Request.Context(), id, req.Name, req.Username, req.Password, req.Note)
	if err != nil {
		h.writeError(c, "failed to add credentials", id, err)
		return
	}

	_ = c.JSON(201, dto.MessageResponse{Message: "credentials added"})
}

func (h *CredentialHandler) Update(c *drift.Context) {
	id := middleware.GetIdentity(c)
	if id == "" {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.UpdateCredentialsRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	err := h.credentialService.UpdateCredentials(c.Request.Context(), id, req.CurrentName, req.Name, req.Username, req.Password, req.Note)
	if err != nil {
		h.writeError(c, "failed to update credentials", id, err)
		return
	}

	_ = c.JSON(200, dto.MessageResponse{Message: "credentials updated"})
}

func (h *CredentialHandler) Delete(c *drift.Context) {
	id := middleware.GetIdentity(c)
	if id == "" {
		c.Unauthorized("not authenticated")
		return
	}

	err := h.credentialService.DeleteCredentials(c.Request.Context(), id, c.QueryParam("name"))
	if err != nil {
		h.writeError(c, "failed to delete credentials", id, err)
		return
	}

	_ = c.JSON(200, dto.MessageResponse{Message: "credentials deleted"})
}

func (h *CredentialHandler) Owner(c *drift.Context) {
	owner, err := h.credentialService.Owner(c.Request.Context())
	if err != nil {
		if errors.Is(err, vault.ErrOwnerNotSet) {
			c.NotFound("vault owner is not set")
			return
		}
		h.logger.Error("failed to get vault owner", "error", err)
		c.InternalServerError("failed to get vault owner")
		return
	}

	_ = c.JSON(200, dto.OwnerResponse{Owner: string(owner)})
}

func (h *CredentialHandler) writeError(c *drift.Context, msg string, id vault.Identity, err error) {
	var verr *vault.ValidationError
	switch {
	case errors.As(err, &verr):
		c.BadRequest(verr.Message)
	case errors.Is(err, vault.ErrNotFound):
		c.NotFound(err.Error())
	default:
		h.logger.Error(msg, "identity", id, "error", err)
		c.InternalServerError(msg)
	}
}
