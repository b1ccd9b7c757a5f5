package handler

import (
	"log"
	"net/http"

	"quizhub/internal/common"
)

// respondError maps the error to a status and picks the message: domain
// errors surface their own text, anything unexpected gets the route's generic
// message so internals never leak to clients.
func respondError(w http.ResponseWriter, err error, genericMessage string) {
	status := common.HTTPStatusFromError(err)
	if status == http.StatusInternalServerError {
		log.Printf("ERROR: %s: %v", genericMessage, err)
		common.RespondWithError(w, status, genericMessage)
		return
	}
	common.RespondWithError(w, status, err.Error())
}
