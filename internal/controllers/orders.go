package controllers

import (
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"scooter-rental/internal/services"
)

type OrderController struct {
	svc *services.OrderService
	log log.FieldLogger
}

func NewOrderController(svc *services.OrderService, l log.FieldLogger) *OrderController {
	return &OrderController{svc: svc, log: l}
}

type listOrdersPayload struct {
	UserID uint `json:"userID" binding:"required"`
}

func (o *OrderController) List(c *gin.Context) {
	var p listOrdersPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, err)
		return
	}
	orders, err := o.svc.ListOrders(c.Request.Context(), p.UserID)
	if err != nil {
		fail(c, o.log, err)
		return
	}
	ok(c, orders)
}

type createOrderPayload struct {
	Email     string `json:"email" binding:"required,email"`
	ProductID uint   `json:"productid" binding:"required"`
}

func (o *OrderController) Create(c *gin.Context) {
	var p createOrderPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, err)
		return
	}
	order, err := o.svc.CreateOrder(c.Request.Context(), p.Email, p.ProductID)
	if err != nil {
		fail(c, o.log, err)
		return
	}
	ok(c, order)
}
