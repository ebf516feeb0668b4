package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/nikolayk812/beer-catalog/internal/cart"
	"github.com/nikolayk812/beer-catalog/internal/checkout"
	"github.com/nikolayk812/beer-catalog/internal/domain"
	apperrors "github.com/nikolayk812/beer-catalog/internal/errors"
	"github.com/nikolayk812/beer-catalog/internal/logger"
	"github.com/nikolayk812/beer-catalog/internal/port"
	"github.com/nikolayk812/beer-catalog/internal/session"
)

// Shop holds the storefront settings used to render products and the
// order handoff.
type Shop struct {
	WhatsAppPhone    string
	Greeting         string
	CurrencySymbol   string
	WithSubtotals    bool
	PlaceholderImage string
}

type Handler struct {
	products port.ProductRepository
	sessions *session.Registry
	shop     Shop
	logg     *logger.Logger
}

func NewHandler(products port.ProductRepository, sessions *session.Registry, shop Shop, logg *logger.Logger) *Handler {
	return &Handler{
		products: products,
		sessions: sessions,
		shop:     shop,
		logg:     logg,
	}
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.ListProducts(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(r.Context(), h.logg, w, apperrors.Wrap(apperrors.CodeDependency, err, "catalog unavailable"))
		return
	}

	writeSuccess(w, http.StatusOK, mapProducts(products, h.shop.PlaceholderImage))
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := productIDParam(r)
	if err != nil {
		writeError(r.Context(), h.logg, w, err)
		return
	}

	product, err := h.lookupProduct(r, id)
	if err != nil {
		writeError(r.Context(), h.logg, w, err)
		return
	}

	writeSuccess(w, http.StatusOK, mapProduct(product, h.shop.PlaceholderImage))
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	h.cartCommand(w, r, func(*cart.Store) error { return nil })
}

func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(r.Context(), h.logg, w, err)
		return
	}

	product, err := h.lookupProduct(r, domain.ProductID(req.ProductID))
	if err != nil {
		writeError(r.Context(), h.logg, w, err)
		return
	}

	h.cartCommand(w, r, func(s *cart.Store) error {
		if product.Price.Currency != s.Currency() {
			return apperrors.New(apperrors.CodeValidation, "product currency does not match the cart").
				WithDetails(map[string]string{"product_id": "is priced in " + product.Price.Currency.String()})
		}
		s.AddItem(product)
		return nil
	})
}

func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, err := productIDParam(r)
	if err != nil {
		writeError(r.Context(), h.logg, w, err)
		return
	}

	h.cartCommand(w, r, func(s *cart.Store) error {
		s.RemoveItem(id)
		return nil
	})
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.cartCommand(w, r, func(s *cart.Store) error {
		s.Clear()
		return nil
	})
}

// EndSession drops the session cart from memory and storage.
func (h *Handler) EndSession(w http.ResponseWriter, r *http.Request) {
	sessionID, err := sessionIDParam(r)
	if err != nil {
		writeError(r.Context(), h.logg, w, err)
		return
	}
	ctx := h.logg.WithSessionID(r.Context(), sessionID.String())

	if err := h.sessions.End(ctx, sessionID); err != nil {
		writeError(ctx, h.logg, w, apperrors.Wrap(apperrors.CodeDependency, err, "cart storage unavailable"))
		return
	}

	h.logg.Info(ctx, "session ended")
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	sessionID, err := sessionIDParam(r)
	if err != nil {
		writeError(r.Context(), h.logg, w, err)
		return
	}
	ctx := h.logg.WithSessionID(r.Context(), sessionID.String())

	var resp CheckoutResponse
	err = h.sessions.Do(ctx, sessionID, func(s *cart.Store) error {
		if s.IsEmpty() {
			return apperrors.New(apperrors.CodeStateConflict, "cart is empty")
		}

		resp.Message = checkout.Message(s.Items(), s.Total(), checkout.MessageOptions{
			Greeting:       h.shop.Greeting,
			CurrencySymbol: h.shop.CurrencySymbol,
			WithSubtotals:  h.shop.WithSubtotals,
		})

		link, err := checkout.Link(h.shop.WhatsAppPhone, resp.Message)
		if err != nil {
			return apperrors.Wrap(apperrors.CodeInternal, err, "messaging link unavailable")
		}
		resp.Link = link
		return nil
	})
	if err != nil {
		if apperrors.As(err) == nil {
			err = apperrors.Wrap(apperrors.CodeDependency, err, "cart storage unavailable")
		}
		writeError(ctx, h.logg, w, err)
		return
	}

	h.logg.Info(ctx, "order handoff prepared")
	writeSuccess(w, http.StatusOK, resp)
}

func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
}

// cartCommand applies fn to the session cart and responds with the
// resulting cart. Typed errors from fn are returned as is.
func (h *Handler) cartCommand(w http.ResponseWriter, r *http.Request, fn func(*cart.Store) error) {
	sessionID, err := sessionIDParam(r)
	if err != nil {
		writeError(r.Context(), h.logg, w, err)
		return
	}
	ctx := h.logg.WithSessionID(r.Context(), sessionID.String())

	var resp CartResponse
	err = h.sessions.Do(ctx, sessionID, func(s *cart.Store) error {
		if err := fn(s); err != nil {
			return err
		}
		resp = mapCart(s, h.shop.PlaceholderImage)
		return nil
	})
	if err != nil {
		if apperrors.As(err) == nil {
			err = apperrors.Wrap(apperrors.CodeDependency, err, "cart storage unavailable")
		}
		writeError(ctx, h.logg, w, err)
		return
	}

	writeSuccess(w, http.StatusOK, resp)
}

func (h *Handler) lookupProduct(r *http.Request, id domain.ProductID) (domain.Product, error) {
	product, err := h.products.GetProduct(r.Context(), id)
	if errors.Is(err, port.ErrProductNotFound) {
		return domain.Product{}, apperrors.Wrap(apperrors.CodeNotFound, err, "product not found")
	}
	if err != nil {
		return domain.Product{}, apperrors.Wrap(apperrors.CodeDependency, err, "catalog unavailable")
	}
	return product, nil
}

func mapCart(s *cart.Store, placeholderImage string) CartResponse {
	items := s.Items()

	resp := CartResponse{
		Items:      make([]CartItemResponse, len(items)),
		Distinct:   s.Len(),
		TotalUnits: s.TotalUnits(),
		Total:      mapMoney(s.Total()),
		Summary:    checkout.Summary{TotalUnits: s.TotalUnits(), Total: s.Total()}.Label(),
	}
	for i, item := range items {
		resp.Items[i] = CartItemResponse{
			ProductID: int64(item.ProductID),
			Name:      item.Name,
			UnitPrice: mapMoney(item.UnitPrice),
			Quantity:  item.Quantity,
			Subtotal:  mapMoney(item.Subtotal()),
			ImageURL:  item.DisplayImage(placeholderImage),
		}
	}

	return resp
}

func sessionIDParam(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "sessionID")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperrors.Wrap(apperrors.CodeValidation, err, "invalid session id").
			WithDetails(map[string]string{"session_id": "must be a UUID"})
	}
	return id, nil
}

func productIDParam(r *http.Request) (domain.ProductID, error) {
	raw := chi.URLParam(r, "productID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.New(apperrors.CodeValidation, "invalid product id").
			WithDetails(map[string]string{"product_id": "must be a positive integer"})
	}
	return domain.ProductID(id), nil
}
