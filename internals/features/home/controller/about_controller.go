package controller

import (
	"github.com/gofiber/fiber/v2"

	helper "absenta_backend/internals/helpers"
)

// GET /api/about
func About(c *fiber.Ctx) error {
	return helper.JsonOK(c, "À propos", fiber.Map{
		"application": "Absenta",
		"description": "Gestion des absences du centre de formation",
		"centre":      "CFM OFPPT",
		"version":     "1.0.0",
	})
}
