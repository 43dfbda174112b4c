package dto

import (
	"time"

	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
)

// CreateAlertRequest body para POST /api/inventory/alerts.
type CreateAlertRequest struct {
	ProductID    string `json:"productId"`
	Type         string `json:"type"`
	Message      string `json:"message,omitempty"`
	Threshold    *int   `json:"threshold,omitempty"`
	CurrentStock *int   `json:"currentStock,omitempty"`
}

// AlertIDsRequest body de las operaciones masivas.
type AlertIDsRequest struct {
	IDs []string `json:"ids"`
}

// AlertResponse salida de una alerta.
type AlertResponse struct {
	ID           string     `json:"id"`
	ProductID    string     `json:"productId"`
	ProductName  string     `json:"productName"`
	SKU          string     `json:"sku"`
	Type         string     `json:"type"`
	Message      string     `json:"message"`
	Threshold    *int       `json:"threshold"`
	CurrentStock int        `json:"currentStock"`
	IsResolved   bool       `json:"isResolved"`
	ResolvedAt   *time.Time `json:"resolvedAt"`
	ResolvedBy   string     `json:"resolvedBy,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// AlertListResponse lista paginada de alertas.
type AlertListResponse struct {
	PageResponse
	Items []AlertResponse `json:"items"`
}

// AlertSummaryResponse conteos de alertas; byType cuenta solo las activas.
type AlertSummaryResponse struct {
	Total    int            `json:"total"`
	Active   int            `json:"active"`
	Resolved int            `json:"resolved"`
	ByType   map[string]int `json:"byType"`
}

// BulkResultResponse número de alertas afectadas.
type BulkResultResponse struct {
	Count int `json:"count"`
}

// CheckAlertsResponse resultado del barrido manual.
type CheckAlertsResponse struct {
	Created int             `json:"created"`
	Alerts  []AlertResponse `json:"alerts"`
}

// ToAlertResponse convierte la vista de la alerta a su salida HTTP.
func ToAlertResponse(v *entity.StockAlertView) AlertResponse {
	r := alertResponse(&v.StockAlert)
	r.ProductName = v.Product.Name
	r.SKU = v.Product.SKU
	return r
}

// ToAlertResponseBare convierte una alerta sin datos de catálogo.
func ToAlertResponseBare(a *entity.StockAlert) AlertResponse {
	return alertResponse(a)
}

func alertResponse(a *entity.StockAlert) AlertResponse {
	return AlertResponse{
		ID:           a.ID,
		ProductID:    a.ProductID,
		Type:         a.Type,
		Message:      a.Message,
		Threshold:    a.Threshold,
		CurrentStock: a.CurrentStock,
		IsResolved:   a.IsResolved,
		ResolvedAt:   a.ResolvedAt,
		ResolvedBy:   a.ResolvedBy,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

// ToAlertResponses convierte una lista; nunca devuelve nil.
func ToAlertResponses(views []*entity.StockAlertView) []AlertResponse {
	out := make([]AlertResponse, 0, len(views))
	for _, v := range views {
		out = append(out, ToAlertResponse(v))
	}
	return out
}

// ToAlertSummaryResponse convierte los conteos.
func ToAlertSummaryResponse(c *repository.AlertCounts) AlertSummaryResponse {
	byType := c.ByType
	if byType == nil {
		byType = map[string]int{}
	}
	return AlertSummaryResponse{Total: c.Total, Active: c.Active, Resolved: c.Resolved, ByType: byType}
}
