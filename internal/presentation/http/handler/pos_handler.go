package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/retailpk/fbrpos-api/internal/application/cart"
	"github.com/retailpk/fbrpos-api/internal/application/pos"
	"github.com/retailpk/fbrpos-api/internal/application/service"
	"github.com/retailpk/fbrpos-api/internal/domain/enum"
	"github.com/retailpk/fbrpos-api/internal/presentation/http/dto/request"
	"github.com/retailpk/fbrpos-api/internal/presentation/http/dto/response"
)

// POSHandler handles register session and cart HTTP requests
type POSHandler struct {
	sessions        *pos.Store
	productService  *service.ProductService
	checkoutService *service.CheckoutService
}

// NewPOSHandler creates a new POS handler
func NewPOSHandler(sessions *pos.Store, productService *service.ProductService, checkoutService *service.CheckoutService) *POSHandler {
	return &POSHandler{
		sessions:        sessions,
		productService:  productService,
		checkoutService: checkoutService,
	}
}

// cartView is the cart snapshot returned by every cart-mutating endpoint
type cartView struct {
	SessionID     uuid.UUID    `json:"session_id"`
	Cart          *cart.Cart   `json:"cart"`
	Subtotal      float64      `json:"subtotal"`
	Taxes         cart.Amounts `json:"taxes"`
	TotalDiscount float64      `json:"total_discount"`
	GrandTotal    float64      `json:"grand_total"`
	TotalQuantity int          `json:"total_quantity"`
}

func newCartView(sessionID uuid.UUID, c *cart.Cart) *cartView {
	return &cartView{
		SessionID:     sessionID,
		Cart:          c,
		Subtotal:      c.Subtotal(),
		Taxes:         c.TaxTotals(),
		TotalDiscount: c.TotalDiscount(),
		GrandTotal:    c.GrandTotal(),
		TotalQuantity: c.TotalQuantity(),
	}
}

// cartError maps session and cart errors to HTTP responses
func cartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, pos.ErrSessionNotFound):
		response.NotFound(c, "Session not found")
	case errors.Is(err, pos.ErrCheckoutInFlight):
		response.ErrorWithCode(c, 409, "Checkout already in progress for this session")
	case errors.Is(err, cart.ErrLineNotFound):
		response.NotFound(c, "Product not in cart")
	case errors.Is(err, cart.ErrUnknownComponent):
		response.BadRequest(c, "Unknown tax component")
	case errors.Is(err, cart.ErrPaymentIndex):
		response.BadRequest(c, "Payment index out of range")
	default:
		response.Error(c, err)
	}
}

// withSessionCart runs fn under the session's cart lock and returns the
// resulting cart snapshot
func (h *POSHandler) withSessionCart(c *gin.Context, message string, fn func(ct *cart.Cart) error) {
	id, ok := parseUUIDParam(c, "id", "session ID")
	if !ok {
		return
	}

	sess, err := h.sessions.Get(id)
	if err != nil {
		cartError(c, err)
		return
	}

	var view *cartView
	err = sess.WithCart(func(ct *cart.Cart) error {
		if err := fn(ct); err != nil {
			return err
		}
		view = newCartView(sess.ID, ct)
		return nil
	})
	if err != nil {
		cartError(c, err)
		return
	}

	response.OK(c, message, view)
}

// CreateSession opens a new register session with an empty cart
func (h *POSHandler) CreateSession(c *gin.Context) {
	sess := h.sessions.Create()

	var view *cartView
	_ = sess.WithCart(func(ct *cart.Cart) error {
		view = newCartView(sess.ID, ct)
		return nil
	})

	response.Created(c, "Session created successfully", view)
}

// GetCart returns the current cart snapshot
func (h *POSHandler) GetCart(c *gin.Context) {
	h.withSessionCart(c, "Cart retrieved successfully", func(ct *cart.Cart) error {
		return nil
	})
}

// DeleteSession abandons a register session
func (h *POSHandler) DeleteSession(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "session ID")
	if !ok {
		return
	}

	h.sessions.Delete(id)
	response.NoContent(c)
}

// AddItem adds one unit of a product to the cart
func (h *POSHandler) AddItem(c *gin.Context) {
	var req request.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), req.ProductID)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.withSessionCart(c, "Item added to cart", func(ct *cart.Cart) error {
		ct.AddItem(product)
		return nil
	})
}

// SetQuantity sets a cart line's quantity; zero removes the line
func (h *POSHandler) SetQuantity(c *gin.Context) {
	productID, ok := parseUUIDParam(c, "productId", "product ID")
	if !ok {
		return
	}

	var req request.SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	h.withSessionCart(c, "Quantity updated", func(ct *cart.Cart) error {
		return ct.SetQuantity(productID, req.Quantity)
	})
}

// SetLineDiscount sets the flat discount on a cart line
func (h *POSHandler) SetLineDiscount(c *gin.Context) {
	productID, ok := parseUUIDParam(c, "productId", "product ID")
	if !ok {
		return
	}

	var req request.SetDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	h.withSessionCart(c, "Discount updated", func(ct *cart.Cart) error {
		return ct.SetLineDiscount(productID, req.Discount)
	})
}

// ToggleTax flips one tax component on a cart line
func (h *POSHandler) ToggleTax(c *gin.Context) {
	productID, ok := parseUUIDParam(c, "productId", "product ID")
	if !ok {
		return
	}

	var req request.ToggleTaxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	h.withSessionCart(c, "Tax component toggled", func(ct *cart.Cart) error {
		return ct.ToggleTax(productID, cart.Component(req.Component))
	})
}

// RemoveItem removes a product line from the cart
func (h *POSHandler) RemoveItem(c *gin.Context) {
	productID, ok := parseUUIDParam(c, "productId", "product ID")
	if !ok {
		return
	}

	h.withSessionCart(c, "Item removed from cart", func(ct *cart.Cart) error {
		return ct.RemoveItem(productID)
	})
}

// UpdateSelection updates the session's customer, branch, device and invoice
// fields. Only fields present in the request change.
func (h *POSHandler) UpdateSelection(c *gin.Context) {
	var req request.UpdateSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	h.withSessionCart(c, "Selection updated", func(ct *cart.Cart) error {
		if req.CustomerID != nil {
			ct.CustomerID = req.CustomerID
		}
		if req.BranchID != nil {
			ct.BranchID = req.BranchID
		}
		if req.DeviceID != nil {
			ct.DeviceID = req.DeviceID
		}
		if req.InvoiceType != nil {
			ct.InvoiceType = enum.InvoiceType(*req.InvoiceType)
		}
		if req.BuyerNTN != nil {
			ct.BuyerNTN = req.BuyerNTN
		}
		if req.BuyerName != nil {
			ct.BuyerName = req.BuyerName
		}
		if req.Discount != nil {
			ct.Discount = *req.Discount
		}
		return nil
	})
}

// AddPayment appends a tender line to the cart
func (h *POSHandler) AddPayment(c *gin.Context) {
	var req request.AddCartPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	h.withSessionCart(c, "Payment added", func(ct *cart.Cart) error {
		ct.AddPayment(req.Method, req.Amount)
		return nil
	})
}

// RemovePayment removes the tender line at the given index
func (h *POSHandler) RemovePayment(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.BadRequest(c, "Invalid payment index")
		return
	}

	h.withSessionCart(c, "Payment removed", func(ct *cart.Cart) error {
		return ct.RemovePayment(index)
	})
}

// ClearCart resets the sale in progress, keeping the register selections
func (h *POSHandler) ClearCart(c *gin.Context) {
	h.withSessionCart(c, "Cart cleared", func(ct *cart.Cart) error {
		ct.Clear()
		return nil
	})
}

// Checkout finalizes the session's cart into a persisted sale
func (h *POSHandler) Checkout(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "session ID")
	if !ok {
		return
	}

	sale, err := h.checkoutService.Checkout(c.Request.Context(), id)
	if err != nil {
		cartError(c, err)
		return
	}

	response.Created(c, "Sale completed successfully", sale)
}
