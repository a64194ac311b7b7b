// Package config loads service configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// ServiceConfig configures one backend service: the port it listens on and
// the JSON document file it owns.
type ServiceConfig struct {
	Port     string
	DataFile string
}

// GatewayConfig configures the reverse proxy.
type GatewayConfig struct {
	Port        string
	UsersURL    string
	ProductsURL string
	OrdersURL   string
	Timeout     time.Duration
	MaxRetries  int
}

func LoadUsers() ServiceConfig {
	godotenv.Load()
	return ServiceConfig{
		Port:     getEnv("USERS_SERVICE_PORT", "5001"),
		DataFile: getEnv("USERS_DATA_FILE", "data/users.json"),
	}
}

func LoadProducts() ServiceConfig {
	godotenv.Load()
	return ServiceConfig{
		Port:     getEnv("PRODUCTS_SERVICE_PORT", "5002"),
		DataFile: getEnv("PRODUCTS_DATA_FILE", "data/products.json"),
	}
}

func LoadOrders() ServiceConfig {
	godotenv.Load()
	return ServiceConfig{
		Port:     getEnv("ORDERS_SERVICE_PORT", "5003"),
		DataFile: getEnv("ORDERS_DATA_FILE", "data/orders.json"),
	}
}

func LoadGateway() GatewayConfig {
	godotenv.Load()
	return GatewayConfig{
		Port:        getEnv("GATEWAY_PORT", "5000"),
		UsersURL:    getEnv("USERS_SERVICE_URL", "http://localhost:5001"),
		ProductsURL: getEnv("PRODUCTS_SERVICE_URL", "http://localhost:5002"),
		OrdersURL:   getEnv("ORDERS_SERVICE_URL", "http://localhost:5003"),
		Timeout:     getEnvDuration("GATEWAY_TIMEOUT", 5*time.Second),
		MaxRetries:  getEnvInt("GATEWAY_MAX_RETRIES", 2),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
