package api

import (
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/ejardin/internal/auth"
	"github.com/ejardin/internal/database"
	"github.com/ejardin/internal/models"
	"github.com/ejardin/internal/report"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type orderItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type createOrderRequest struct {
	Items           []orderItemRequest `json:"items" binding:"required,min=1"`
	ShippingAddress string             `json:"shipping_address" binding:"required"`
}

func (s *Server) createOrder(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := database.GetDB()
	order := models.Order{
		Number:          uuid.NewString(),
		UserID:          user.ID,
		ShippingAddress: req.ShippingAddress,
		Status:          models.OrderStatusPending,
	}
	var lowStock []models.Product

	// Stock checks, price capture and decrements happen in one
	// transaction so a rejected line item leaves the catalog untouched.
	err := db.Transaction(func(tx *gorm.DB) error {
		for _, item := range req.Items {
			var product models.Product
			if err := tx.First(&product, item.ProductID).Error; err != nil {
				return errProductNotFound{id: item.ProductID}
			}
			if product.Stock < item.Quantity {
				return errInsufficientStock{name: product.Name}
			}

			product.Stock -= item.Quantity
			if err := tx.Save(&product).Error; err != nil {
				return err
			}
			if product.Stock < report.LowStockThreshold {
				lowStock = append(lowStock, product)
			}

			order.Items = append(order.Items, models.OrderItem{
				ProductID: product.ID,
				Quantity:  item.Quantity,
				Price:     product.Price,
			})
			order.TotalPrice += product.Price * float64(item.Quantity)
		}

		return tx.Create(&order).Error
	})
	if err != nil {
		switch err.(type) {
		case errProductNotFound, errInsufficientStock:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create order"})
		}
		return
	}

	// Delivery failures must not fail the order itself.
	go s.sendOrderConfirmation(user.Email, order.ID)
	for i := range lowStock {
		go s.sendLowStockAlert(lowStock[i])
	}

	c.JSON(http.StatusCreated, order)
}

func (s *Server) sendOrderConfirmation(email string, orderID uint) {
	var order models.Order
	if err := database.GetDB().Preload("Items.Product").First(&order, orderID).Error; err != nil {
		log.Printf("Error loading order %d for confirmation email: %v", orderID, err)
		return
	}
	if err := s.mailer.Send(email, "orderConfirmation", map[string]interface{}{"order": &order}); err != nil {
		log.Printf("Error sending order confirmation for %s: %v", order.Number, err)
	}
}

func (s *Server) sendLowStockAlert(product models.Product) {
	if s.adminTo != "" {
		if err := s.mailer.Send(s.adminTo, "stockAlert", map[string]interface{}{"product": &product}); err != nil {
			log.Printf("Error sending stock alert for %s: %v", product.Name, err)
		}
	}
	if err := s.slack.NotifyLowStock(&product); err != nil {
		log.Printf("Error posting stock alert to slack for %s: %v", product.Name, err)
	}
}

func (s *Server) listMyOrders(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var orders []models.Order
	if err := database.GetDB().Preload("Items.Product").
		Where("user_id = ?", user.ID).
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, orders)
}

func (s *Server) getOrder(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID"})
		return
	}

	var order models.Order
	if err := database.GetDB().Preload("Items.Product").First(&order, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}

	if order.UserID != user.ID && !user.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"error": "not authorized"})
		return
	}

	c.JSON(http.StatusOK, order)
}

func (s *Server) listOrders(c *gin.Context) {
	query := database.GetDB().Preload("Items.Product")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	if err := query.Order("created_at desc").Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, orders)
}

func (s *Server) updateOrderStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID"})
		return
	}

	var req struct {
		Status         models.OrderStatus `json:"status" binding:"required"`
		TrackingNumber string             `json:"tracking_number"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.IsValidOrderStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order status"})
		return
	}

	db := database.GetDB()
	var order models.Order
	if err := db.Preload("User").First(&order, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}

	order.Status = req.Status
	if req.TrackingNumber != "" {
		order.TrackingNumber = req.TrackingNumber
	}
	if err := db.Save(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	go func(email string, o models.Order) {
		if err := s.mailer.Send(email, "orderStatusUpdate", map[string]interface{}{"order": &o}); err != nil {
			log.Printf("Error sending status update for %s: %v", o.Number, err)
		}
	}(order.User.Email, order)

	c.JSON(http.StatusOK, order)
}

func (s *Server) createPaymentIntent(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req struct {
		OrderID uint `json:"order_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := database.GetDB()
	var order models.Order
	if err := db.First(&order, req.OrderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	if order.UserID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not authorized"})
		return
	}

	intent, err := s.stripe.CreateIntent(&order)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "payment processing error"})
		return
	}

	if err := db.Model(&order).Update("payment_intent_id", intent.ID).Error; err != nil {
		log.Printf("Error recording payment intent %s on order %s: %v", intent.ID, order.Number, err)
	}

	c.JSON(http.StatusOK, gin.H{"client_secret": intent.ClientSecret})
}

func (s *Server) paymentWebhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read payload"})
		return
	}

	event, err := s.stripe.VerifyWebhook(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if event.Type == "payment_intent.succeeded" {
		intent, err := s.stripe.IntentFromEvent(event)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		orderID, err := strconv.ParseUint(intent.Metadata["order_id"], 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing order_id metadata"})
			return
		}

		db := database.GetDB()
		var order models.Order
		if err := db.Preload("Items").First(&order, uint(orderID)).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}

		now := time.Now()
		order.Status = models.OrderStatusProcessing
		order.PaidAt = &now
		if err := db.Save(&order).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order"})
			return
		}

		go func(o models.Order) {
			if err := s.slack.NotifyOrderPaid(&o); err != nil {
				log.Printf("Error posting paid order %s to slack: %v", o.Number, err)
			}
		}(order)
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

type errProductNotFound struct{ id uint }

func (e errProductNotFound) Error() string {
	return "product not found: " + strconv.FormatUint(uint64(e.id), 10)
}

type errInsufficientStock struct{ name string }

func (e errInsufficientStock) Error() string {
	return "insufficient stock for " + e.name
}
