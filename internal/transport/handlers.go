package transport

import (
	"github.com/ds124wfegd/adstudio/internal/service"
)

type AdHandler struct {
	service service.AdService
}

func NewAdHandler(service service.AdService) *AdHandler {
	return &AdHandler{service: service}
}
