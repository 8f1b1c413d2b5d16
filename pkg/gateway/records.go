package gateway

import (
	"time"

	"aurelialuxe.com/boutique/pkg/models"
)

// Remote records use flat lower-snake-case field names. Every conversion between
// the models and the remote schema goes through the functions in this file.

type ReviewRecord struct {
	ID       string `bson:"id" json:"id"`
	UserName string `bson:"user_name" json:"user_name"`
	Rating   int    `bson:"rating" json:"rating"`
	Comment  string `bson:"comment" json:"comment"`
	Date     string `bson:"date" json:"date"`
}

type ProductRecord struct {
	ID          string         `bson:"_id" json:"id"`
	SKU         string         `bson:"sku" json:"sku"`
	Name        string         `bson:"name" json:"name"`
	Description string         `bson:"description" json:"description"`
	BasePrice   int            `bson:"base_price" json:"base_price"`
	Discount    *int           `bson:"discount,omitempty" json:"discount,omitempty"`
	Category    string         `bson:"category" json:"category"`
	MetalPurity string         `bson:"metal_purity" json:"metal_purity"`
	StoneType   string         `bson:"stone_type" json:"stone_type"`
	Images      []string       `bson:"images" json:"images"`
	StockStatus string         `bson:"stock_status" json:"stock_status"`
	Weight      string         `bson:"weight" json:"weight"`
	Hallmark    string         `bson:"hallmark" json:"hallmark"`
	IsNew       bool           `bson:"is_new" json:"is_new"`
	IsPopular   bool           `bson:"is_popular" json:"is_popular"`
	Reviews     []ReviewRecord `bson:"reviews" json:"reviews"`
}

type CartItemRecord struct {
	Product       ProductRecord `bson:"product" json:"product"`
	Quantity      int           `bson:"quantity" json:"quantity"`
	SelectedMetal string        `bson:"selected_metal" json:"selected_metal"`
	SelectedStone string        `bson:"selected_stone" json:"selected_stone"`
	FinalPrice    float64       `bson:"final_price" json:"final_price"`
}

type ContactRecord struct {
	Name    string `bson:"name" json:"name"`
	Email   string `bson:"email" json:"email"`
	Phone   string `bson:"phone" json:"phone"`
	Message string `bson:"message" json:"message"`
}

type OrderRecord struct {
	ID        string           `bson:"id" json:"id"`
	Date      time.Time        `bson:"date" json:"date"`
	Items     []CartItemRecord `bson:"items" json:"items"`
	Total     float64          `bson:"total" json:"total"`
	Status    string           `bson:"status" json:"status"`
	RefNumber string           `bson:"ref_number" json:"ref_number"`
	Contact   ContactRecord    `bson:"contact" json:"contact"`
}

type UserRecord struct {
	ID           string        `bson:"_id" json:"id"`
	Email        string        `bson:"email" json:"email"`
	PasswordHash string        `bson:"password_hash" json:"password_hash"`
	Name         string        `bson:"name" json:"name"`
	IsAdmin      bool          `bson:"is_admin" json:"is_admin"`
	IsApproved   bool          `bson:"is_approved" json:"is_approved"`
	IsSubscribed bool          `bson:"is_subscribed" json:"is_subscribed"`
	Wishlist     []string      `bson:"wishlist" json:"wishlist"`
	OrderHistory []OrderRecord `bson:"order_history" json:"order_history"`
}

type SiteContentRecord struct {
	ID               string `bson:"_id" json:"id"`
	HeroTitle        string `bson:"hero_title" json:"hero_title"`
	HeroSubtitle     string `bson:"hero_subtitle" json:"hero_subtitle"`
	HeroImageURL     string `bson:"hero_image_url" json:"hero_image_url"`
	PhilosophyQuote  string `bson:"philosophy_quote" json:"philosophy_quote"`
	PhilosophyAuthor string `bson:"philosophy_author" json:"philosophy_author"`
	SocialInstagram  string `bson:"social_instagram" json:"social_instagram"`
	SocialFacebook   string `bson:"social_facebook" json:"social_facebook"`
	SocialPinterest  string `bson:"social_pinterest" json:"social_pinterest"`
}

func ToProductRecord(p models.Product) ProductRecord {
	rec := ProductRecord{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		BasePrice:   p.BasePrice,
		Category:    p.Category,
		MetalPurity: string(p.MetalPurity),
		StoneType:   string(p.StoneType),
		Images:      append([]string{}, p.Images...),
		StockStatus: string(p.StockStatus),
		Weight:      p.Weight,
		Hallmark:    p.Hallmark,
		IsNew:       p.IsNew,
		IsPopular:   p.IsPopular,
		Reviews:     make([]ReviewRecord, len(p.Reviews)),
	}
	if p.Discount != nil {
		rec.Discount = models.IntPtr(*p.Discount)
	}
	for i, r := range p.Reviews {
		rec.Reviews[i] = ReviewRecord(r)
	}
	return rec
}

func FromProductRecord(rec ProductRecord) models.Product {
	p := models.Product{
		ID:          rec.ID,
		SKU:         rec.SKU,
		Name:        rec.Name,
		Description: rec.Description,
		BasePrice:   rec.BasePrice,
		Category:    rec.Category,
		MetalPurity: models.MetalPurity(rec.MetalPurity),
		StoneType:   models.StoneType(rec.StoneType),
		Images:      append([]string{}, rec.Images...),
		StockStatus: models.StockStatus(rec.StockStatus),
		Weight:      rec.Weight,
		Hallmark:    rec.Hallmark,
		IsNew:       rec.IsNew,
		IsPopular:   rec.IsPopular,
		Reviews:     make([]models.Review, len(rec.Reviews)),
	}
	if rec.Discount != nil {
		p.Discount = models.IntPtr(*rec.Discount)
	}
	for i, r := range rec.Reviews {
		p.Reviews[i] = models.Review(r)
	}
	return p
}

func toCartItemRecord(ci models.CartItem) CartItemRecord {
	return CartItemRecord{
		Product:       ToProductRecord(ci.Product),
		Quantity:      ci.Quantity,
		SelectedMetal: string(ci.SelectedMetal),
		SelectedStone: string(ci.SelectedStone),
		FinalPrice:    ci.FinalPrice,
	}
}

func fromCartItemRecord(rec CartItemRecord) models.CartItem {
	return models.CartItem{
		Product:       FromProductRecord(rec.Product),
		Quantity:      rec.Quantity,
		SelectedMetal: models.MetalPurity(rec.SelectedMetal),
		SelectedStone: models.StoneType(rec.SelectedStone),
		FinalPrice:    rec.FinalPrice,
	}
}

func ToOrderRecord(o models.Order) OrderRecord {
	rec := OrderRecord{
		ID:        o.ID,
		Date:      o.Date,
		Items:     make([]CartItemRecord, len(o.Items)),
		Total:     o.Total,
		Status:    string(o.Status),
		RefNumber: o.RefNumber,
		Contact:   ContactRecord(o.Contact),
	}
	for i, it := range o.Items {
		rec.Items[i] = toCartItemRecord(it)
	}
	return rec
}

func FromOrderRecord(rec OrderRecord) models.Order {
	o := models.Order{
		ID:        rec.ID,
		Date:      rec.Date,
		Items:     make([]models.CartItem, len(rec.Items)),
		Total:     rec.Total,
		Status:    models.OrderStatus(rec.Status),
		RefNumber: rec.RefNumber,
		Contact:   models.Contact(rec.Contact),
	}
	for i, it := range rec.Items {
		o.Items[i] = fromCartItemRecord(it)
	}
	return o
}

func toOrderRecords(orders []models.Order) []OrderRecord {
	out := make([]OrderRecord, len(orders))
	for i, o := range orders {
		out[i] = ToOrderRecord(o)
	}
	return out
}

func ToUserRecord(u models.User) UserRecord {
	return UserRecord{
		ID:           u.ID,
		Email:        models.NormalizeEmail(u.Email),
		PasswordHash: u.PasswordHash,
		Name:         u.Name,
		IsAdmin:      u.IsAdmin,
		IsApproved:   u.IsApproved,
		IsSubscribed: u.IsSubscribed,
		Wishlist:     append([]string{}, u.Wishlist...),
		OrderHistory: toOrderRecords(u.OrderHistory),
	}
}

func FromUserRecord(rec UserRecord) models.User {
	u := models.User{
		ID:           rec.ID,
		Email:        rec.Email,
		PasswordHash: rec.PasswordHash,
		Name:         rec.Name,
		IsAdmin:      rec.IsAdmin,
		IsApproved:   rec.IsApproved,
		IsSubscribed: rec.IsSubscribed,
		Wishlist:     append([]string{}, rec.Wishlist...),
		OrderHistory: make([]models.Order, len(rec.OrderHistory)),
	}
	for i, o := range rec.OrderHistory {
		u.OrderHistory[i] = FromOrderRecord(o)
	}
	return u
}

func ToSiteContentRecord(c models.SiteContent) SiteContentRecord {
	return SiteContentRecord{
		ID:               models.SiteContentID,
		HeroTitle:        c.Hero.Title,
		HeroSubtitle:     c.Hero.Subtitle,
		HeroImageURL:     c.Hero.ImageURL,
		PhilosophyQuote:  c.Philosophy.Quote,
		PhilosophyAuthor: c.Philosophy.Author,
		SocialInstagram:  c.Social.Instagram,
		SocialFacebook:   c.Social.Facebook,
		SocialPinterest:  c.Social.Pinterest,
	}
}

func FromSiteContentRecord(rec SiteContentRecord) models.SiteContent {
	return models.SiteContent{
		Hero:       models.Hero{Title: rec.HeroTitle, Subtitle: rec.HeroSubtitle, ImageURL: rec.HeroImageURL},
		Philosophy: models.Philosophy{Quote: rec.PhilosophyQuote, Author: rec.PhilosophyAuthor},
		Social:     models.Social{Instagram: rec.SocialInstagram, Facebook: rec.SocialFacebook, Pinterest: rec.SocialPinterest},
	}
}

// Fields returns the patch as a snake-case update document
func (p UserPatch) Fields() map[string]any {
	fields := make(map[string]any)
	if p.Name != nil {
		fields["name"] = *p.Name
	}
	if p.PasswordHash != nil {
		fields["password_hash"] = *p.PasswordHash
	}
	if p.IsAdmin != nil {
		fields["is_admin"] = *p.IsAdmin
	}
	if p.IsApproved != nil {
		fields["is_approved"] = *p.IsApproved
	}
	if p.IsSubscribed != nil {
		fields["is_subscribed"] = *p.IsSubscribed
	}
	if p.Wishlist != nil {
		fields["wishlist"] = append([]string{}, (*p.Wishlist)...)
	}
	if p.OrderHistory != nil {
		fields["order_history"] = toOrderRecords(*p.OrderHistory)
	}
	return fields
}

// Apply writes the patch onto a record
func (p UserPatch) Apply(rec *UserRecord) {
	if p.Name != nil {
		rec.Name = *p.Name
	}
	if p.PasswordHash != nil {
		rec.PasswordHash = *p.PasswordHash
	}
	if p.IsAdmin != nil {
		rec.IsAdmin = *p.IsAdmin
	}
	if p.IsApproved != nil {
		rec.IsApproved = *p.IsApproved
	}
	if p.IsSubscribed != nil {
		rec.IsSubscribed = *p.IsSubscribed
	}
	if p.Wishlist != nil {
		rec.Wishlist = append([]string{}, (*p.Wishlist)...)
	}
	if p.OrderHistory != nil {
		rec.OrderHistory = toOrderRecords(*p.OrderHistory)
	}
}

// Empty reports whether the patch changes nothing
func (p UserPatch) Empty() bool {
	return len(p.Fields()) == 0
}
