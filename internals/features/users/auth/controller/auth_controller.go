package controller

import (
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"absenta_backend/internals/configs"
	"absenta_backend/internals/constants"
	"absenta_backend/internals/features/users/auth/dto"
	helper "absenta_backend/internals/helpers"
)

// Table de comptes de démonstration (oracle d'authentification externe
// au sens du contrat : à remplacer par un vrai annuaire en production).
// Les mots de passe sont hashés au démarrage pour que la vérification
// passe par bcrypt comme le ferait un vrai backend.
var credentials = map[string]struct {
	Hash []byte
	Role string
}{}

var demoAccounts = []struct {
	Email    string
	Password string
	Role     string
}{
	{"admin@cfm.ofppt.ma", "Adm#8rP!29Ws@ZqK", constants.RoleAdmin},
	{"directeur@cfm.ofppt.ma", "Dir$9Kf&51Lu^MxT", constants.RoleDirecteur},
	{"surveillant@cfm.ofppt.ma", "Surv!4Mn*86Qa&Bv", constants.RoleSurveillant},
	{"formateur@cfm.ofppt.ma", "Form@6Vz!32Jr#Lc", constants.RoleFormateur},
}

func init() {
	for _, acc := range demoAccounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(acc.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("❌ hash compte démo %s: %v", acc.Email, err)
		}
		credentials[acc.Email] = struct {
			Hash []byte
			Role string
		}{Hash: hash, Role: acc.Role}
	}
}

var validate = validator.New()

const tokenTTL = 24 * time.Hour

// POST /api/auth/login
func Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload invalide")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidatorErrors(err))
	}

	cred, ok := credentials[req.Email]
	if !ok || bcrypt.CompareHashAndPassword(cred.Hash, []byte(req.Password)) != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Email ou mot de passe incorrect")
	}

	// Un formateur signe ses saisies de son nom d'utilisateur
	if cred.Role == constants.RoleFormateur && strings.TrimSpace(req.Username) == "" {
		return helper.JsonValidationError(c, map[string][]string{
			"username": {"Veuillez saisir votre nom d'utilisateur"},
		})
	}

	emailLocal := strings.SplitN(req.Email, "@", 2)[0]
	username := emailLocal
	if cred.Role == constants.RoleFormateur {
		username = strings.TrimSpace(req.Username)
	}
	fullName := strings.TrimSpace(req.Username)
	if fullName == "" {
		fullName = emailLocal
	}

	user := dto.UserInfo{
		Email:    req.Email,
		Role:     cred.Role,
		Username: username,
		FullName: fullName,
	}

	token, err := issueToken(user)
	if err != nil {
		log.Printf("[ERROR] signature token: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Impossible de créer le token")
	}

	return helper.JsonOK(c, "Connexion réussie", dto.LoginResponse{User: user, Token: token})
}

// GET /api/auth/me : identité portée par le token
func Me(c *fiber.Ctx) error {
	return helper.JsonOK(c, "ok", dto.UserInfo{
		Email:    localString(c, "userEmail"),
		Role:     localString(c, "userRole"),
		Username: localString(c, "userName"),
		FullName: localString(c, "userFullName"),
	})
}

func issueToken(user dto.UserInfo) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":       user.Email,
		"role":      user.Role,
		"user_name": user.Username,
		"full_name": user.FullName,
		"iat":       now.Unix(),
		"exp":       now.Add(tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(configs.JWTSecret))
}

func localString(c *fiber.Ctx, key string) string {
	if v, ok := c.Locals(key).(string); ok {
		return v
	}
	return ""
}
