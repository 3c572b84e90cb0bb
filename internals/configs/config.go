package configs

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	JWTSecret string
	DataDir   string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Pas de fichier .env, utilisation des variables du système")
	} else {
		log.Println("✅ Fichier .env chargé")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	DataDir = GetEnv("DATA_DIR", "./data")

	if JWTSecret == "" {
		log.Println("❌ JWT_SECRET n'est pas défini !")
	} else {
		log.Println("✅ JWT_SECRET chargé.")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}
