// Package models defines the JSON records exchanged with the NutriCare REST
// API. Field names follow the backend's camelCase wire names.
package models
