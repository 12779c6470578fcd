// internal/adapters/out/docmodel/order.go
package docmodel

import (
	"time"

	orderdom "github.com/MTalha250/Varzan/internal/domain/order"
	paymentdom "github.com/MTalha250/Varzan/internal/domain/payment"
	"github.com/MTalha250/Varzan/internal/domain/pricing"
)

// ========================================
// Order
// ========================================

type OrderItem struct {
	ProductID  string `firestore:"productId" bson:"productId"`
	Type       string `firestore:"type" bson:"type"`
	Name       string `firestore:"name" bson:"name"`
	Image      string `firestore:"image" bson:"image"`
	Quantity   int    `firestore:"quantity" bson:"quantity"`
	Size       string `firestore:"size" bson:"size"`
	Format     string `firestore:"format" bson:"format"`
	PriceCents int64  `firestore:"priceCents" bson:"priceCents"`
}

type ShippingAddress struct {
	Address    string `firestore:"address" bson:"address"`
	City       string `firestore:"city" bson:"city"`
	PostalCode string `firestore:"postalCode" bson:"postalCode"`
	Country    string `firestore:"country" bson:"country"`
}

type Order struct {
	ID              string          `firestore:"-" bson:"_id"`
	Name            string          `firestore:"name" bson:"name"`
	Email           string          `firestore:"email" bson:"email"`
	Whatsapp        string          `firestore:"whatsapp" bson:"whatsapp"`
	Items           []OrderItem     `firestore:"order" bson:"order"`
	Status          string          `firestore:"status" bson:"status"`
	ShippingAddress ShippingAddress `firestore:"shippingAddress" bson:"shippingAddress"`
	SubTotalCents   int64           `firestore:"subTotalCents" bson:"subTotalCents"`
	DeliveryCents   int64           `firestore:"deliveryCents" bson:"deliveryCents"`
	TotalCents      int64           `firestore:"totalCents" bson:"totalCents"`
	CreatedAt       time.Time       `firestore:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time       `firestore:"updatedAt" bson:"updatedAt"`
}

func FromOrder(o orderdom.Order) Order {
	d := Order{
		ID:       o.ID,
		Name:     o.Name,
		Email:    o.Email,
		Whatsapp: o.Whatsapp,
		Items:    make([]OrderItem, 0, len(o.Items)),
		Status:   string(o.Status),
		ShippingAddress: ShippingAddress{
			Address:    o.ShippingAddress.Address,
			City:       o.ShippingAddress.City,
			PostalCode: o.ShippingAddress.PostalCode,
			Country:    o.ShippingAddress.Country,
		},
		SubTotalCents: cents(o.SubTotal),
		DeliveryCents: cents(o.Delivery),
		TotalCents:    cents(o.Total),
		CreatedAt:     o.CreatedAt.UTC(),
		UpdatedAt:     o.UpdatedAt.UTC(),
	}
	for _, it := range o.Items {
		d.Items = append(d.Items, OrderItem{
			ProductID:  it.ProductID,
			Type:       it.Type,
			Name:       it.Name,
			Image:      it.Image,
			Quantity:   it.Quantity,
			Size:       string(it.Size),
			Format:     string(it.Format),
			PriceCents: cents(it.Price),
		})
	}
	return d
}

func (d Order) ToDomain() orderdom.Order {
	o := orderdom.Order{
		ID:       d.ID,
		Name:     d.Name,
		Email:    d.Email,
		Whatsapp: d.Whatsapp,
		Items:    make([]orderdom.Item, 0, len(d.Items)),
		Status:   orderdom.Status(d.Status),
		ShippingAddress: orderdom.ShippingAddress{
			Address:    d.ShippingAddress.Address,
			City:       d.ShippingAddress.City,
			PostalCode: d.ShippingAddress.PostalCode,
			Country:    d.ShippingAddress.Country,
		},
		SubTotal:  fromCents(d.SubTotalCents),
		Delivery:  fromCents(d.DeliveryCents),
		Total:     fromCents(d.TotalCents),
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
	for _, it := range d.Items {
		o.Items = append(o.Items, orderdom.Item{
			ProductID: it.ProductID,
			Type:      it.Type,
			Name:      it.Name,
			Image:     it.Image,
			Quantity:  it.Quantity,
			Size:      pricing.SizeCode(it.Size),
			Format:    orderdom.Format(it.Format),
			Price:     fromCents(it.PriceCents),
		})
	}
	return o
}

// ========================================
// Payment
// ========================================

type PaymentProduct struct {
	ProductID   string `firestore:"productId" bson:"productId"`
	Name        string `firestore:"name" bson:"name"`
	Type        string `firestore:"type" bson:"type"`
	Quantity    int    `firestore:"quantity" bson:"quantity"`
	PriceCents  int64  `firestore:"priceCents" bson:"priceCents"`
	Size        string `firestore:"size" bson:"size"`
	Format      string `firestore:"format" bson:"format"`
	ProductLink string `firestore:"productLink" bson:"productLink"`
}

type Payment struct {
	ID                    string            `firestore:"-" bson:"_id"`
	CustomerEmail         string            `firestore:"customerEmail" bson:"customerEmail"`
	CustomerName          string            `firestore:"customerName" bson:"customerName"`
	StripePaymentIntentID string            `firestore:"stripePaymentIntentId" bson:"stripePaymentIntentId"`
	StripeCustomerID      string            `firestore:"stripeCustomerId" bson:"stripeCustomerId"`
	AmountCents           int64             `firestore:"amountCents" bson:"amountCents"`
	Currency              string            `firestore:"currency" bson:"currency"`
	Status                string            `firestore:"status" bson:"status"`
	Products              []PaymentProduct  `firestore:"products" bson:"products"`
	Metadata              map[string]string `firestore:"metadata,omitempty" bson:"metadata,omitempty"`
	EmailSent             bool              `firestore:"emailSent" bson:"emailSent"`
	EmailSentAt           *time.Time        `firestore:"emailSentAt" bson:"emailSentAt"`
	CreatedAt             time.Time         `firestore:"createdAt" bson:"createdAt"`
	UpdatedAt             time.Time         `firestore:"updatedAt" bson:"updatedAt"`
}

func FromPayment(p paymentdom.Payment) Payment {
	d := Payment{
		ID:                    p.ID,
		CustomerEmail:         p.CustomerEmail,
		CustomerName:          p.CustomerName,
		StripePaymentIntentID: p.StripePaymentIntentID,
		StripeCustomerID:      p.StripeCustomerID,
		AmountCents:           cents(p.Amount),
		Currency:              p.Currency,
		Status:                string(p.Status),
		Products:              make([]PaymentProduct, 0, len(p.Products)),
		Metadata:              p.Metadata,
		EmailSent:             p.EmailSent,
		EmailSentAt:           utcPtr(p.EmailSentAt),
		CreatedAt:             p.CreatedAt.UTC(),
		UpdatedAt:             p.UpdatedAt.UTC(),
	}
	for _, it := range p.Products {
		d.Products = append(d.Products, PaymentProduct{
			ProductID:   it.ProductID,
			Name:        it.Name,
			Type:        it.Type,
			Quantity:    it.Quantity,
			PriceCents:  cents(it.Price),
			Size:        it.Size,
			Format:      it.Format,
			ProductLink: it.ProductLink,
		})
	}
	return d
}

func (d Payment) ToDomain() paymentdom.Payment {
	p := paymentdom.Payment{
		ID:                    d.ID,
		CustomerEmail:         d.CustomerEmail,
		CustomerName:          d.CustomerName,
		StripePaymentIntentID: d.StripePaymentIntentID,
		StripeCustomerID:      d.StripeCustomerID,
		Amount:                fromCents(d.AmountCents),
		Currency:              d.Currency,
		Status:                paymentdom.Status(d.Status),
		Products:              make([]paymentdom.Product, 0, len(d.Products)),
		Metadata:              d.Metadata,
		EmailSent:             d.EmailSent,
		EmailSentAt:           utcPtr(d.EmailSentAt),
		CreatedAt:             d.CreatedAt.UTC(),
		UpdatedAt:             d.UpdatedAt.UTC(),
	}
	for _, it := range d.Products {
		p.Products = append(p.Products, paymentdom.Product{
			ProductID:   it.ProductID,
			Name:        it.Name,
			Type:        it.Type,
			Quantity:    it.Quantity,
			Price:       fromCents(it.PriceCents),
			Size:        it.Size,
			Format:      it.Format,
			ProductLink: it.ProductLink,
		})
	}
	return p
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	u := t.UTC()
	return &u
}
