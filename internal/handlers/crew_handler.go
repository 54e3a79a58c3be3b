package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/crewapp/crew-scheduler/internal/httpresp"
)

type Crew struct {
	ID      uint     `json:"id"`
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

// Seeded crews. Membership management is not exposed yet, so the list is
// served from memory instead of the database.
var seededCrews = []Crew{
	{ID: 1, Name: "Rolê de Sexta", Members: []string{"Ana", "Bruno", "Carla"}},
	{ID: 2, Name: "Futebol Quarta", Members: []string{"Diego", "Edu", "Fábio", "Gil"}},
	{ID: 3, Name: "Cinema", Members: []string{"Helena", "Igor"}},
}

type CrewHandler struct{}

func NewCrewHandler() *CrewHandler {
	return &CrewHandler{}
}

func (h *CrewHandler) List(c *gin.Context) {
	httpresp.List(c, seededCrews)
}
