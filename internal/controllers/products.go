package controllers

import (
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"scooter-rental/internal/services"
)

type ProductController struct {
	svc *services.ProductService
	log log.FieldLogger
}

func NewProductController(svc *services.ProductService, l log.FieldLogger) *ProductController {
	return &ProductController{svc: svc, log: l}
}

// coordinates are pointers so that 0 is a valid value and absence is not
type nearbyPayload struct {
	Lat  *float64 `json:"lat" binding:"required,min=-90,max=90"`
	Long *float64 `json:"long" binding:"required,min=-180,max=180"`
}

func (p *ProductController) Nearby(c *gin.Context) {
	var in nearbyPayload
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	list, err := p.svc.ListNearby(c.Request.Context(), *in.Lat, *in.Long)
	if err != nil {
		fail(c, p.log, err)
		return
	}
	ok(c, list)
}

type addProductPayload struct {
	ProductType string   `json:"productType" binding:"required"`
	Model       string   `json:"model" binding:"required"`
	Lat         *float64 `json:"lat" binding:"required,min=-90,max=90"`
	Long        *float64 `json:"long" binding:"required,min=-180,max=180"`
}

func (p *ProductController) Add(c *gin.Context) {
	var in addProductPayload
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	product, err := p.svc.Add(c.Request.Context(), services.AddProductInput{
		ProductType: in.ProductType,
		Model:       in.Model,
		Lat:         *in.Lat,
		Long:        *in.Long,
	})
	if err != nil {
		fail(c, p.log, err)
		return
	}
	ok(c, product)
}

type updateProductPayload struct {
	Lat         *float64 `json:"lat" binding:"omitempty,min=-90,max=90"`
	Long        *float64 `json:"long" binding:"omitempty,min=-180,max=180"`
	IsAvailable *bool    `json:"isAvailable"`
	Battery     *int     `json:"battery" binding:"omitempty,min=0,max=100"`
}

func (p *ProductController) Update(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}
	var in updateProductPayload
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	product, err := p.svc.Update(c.Request.Context(), id, services.UpdateProductInput{
		Lat:         in.Lat,
		Long:        in.Long,
		IsAvailable: in.IsAvailable,
		Battery:     in.Battery,
	})
	if err != nil {
		fail(c, p.log, err)
		return
	}
	ok(c, product)
}

func (p *ProductController) Delete(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}
	if err := p.svc.Delete(c.Request.Context(), id); err != nil {
		fail(c, p.log, err)
		return
	}
	ok(c, "Product deleted")
}
