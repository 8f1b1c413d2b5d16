package models

// SeedProducts returns the built-in handmade catalog used when no stored catalog is available
func SeedProducts() []Product {
	return []Product{
		{
			ID: "r1", SKU: "AUR-RG-001", Name: "Artisan Floral Kundan Ring",
			Description: "Exquisite handmade 1 gram gold plated ring featuring traditional Kundan work and blooming floral motifs.",
			BasePrice:   1450, Discount: IntPtr(15), Category: "Rings", MetalPurity: MetalOneGramGold, StoneType: StoneKundan,
			Images:      []string{"https://images.unsplash.com/photo-1605100804763-247f67b3557e?auto=format&fit=crop&q=80&w=800"},
			StockStatus: InStock, Weight: "5.2g", Hallmark: "Handmade", IsNew: true, IsPopular: true, Reviews: []Review{},
		},
		{
			ID: "r2", SKU: "AUR-RG-002", Name: "Temple Peacock Statement Ring",
			Description: "Traditional South Indian temple jewelry inspired ring with intricate peacock carvings and ruby highlights.",
			BasePrice:   1800, Discount: IntPtr(10), Category: "Rings", MetalPurity: MetalOneGramGold, StoneType: StoneRuby,
			Images:      []string{"https://images.unsplash.com/photo-1617038220319-276d3cfab638?auto=format&fit=crop&q=80&w=800"},
			StockStatus: InStock, Weight: "8.5g", Hallmark: "Handmade", IsNew: false, IsPopular: true, Reviews: []Review{},
		},
		{
			ID: "r3", SKU: "AUR-RG-003", Name: "Filigree Eternity Band",
			Description: "A delicate handmade band featuring fine gold wire filigree work, gold-plated to perfection.",
			BasePrice:   990, Discount: IntPtr(5), Category: "Rings", MetalPurity: MetalOneGramGold, StoneType: StoneNone,
			Images:      []string{"https://images.unsplash.com/photo-1603561591411-071c4f753934?auto=format&fit=crop&q=80&w=800"},
			StockStatus: InStock, Weight: "3.1g", Hallmark: "Handmade", IsNew: true, IsPopular: false, Reviews: []Review{},
		},
		{
			ID: "n1", SKU: "AUR-NK-001", Name: "Heritage Guttapusalu Mala",
			Description: "Traditional handmade 1 gram gold necklace adorned with clusters of fresh pearls and kemp rubies.",
			BasePrice:   6500, Discount: IntPtr(20), Category: "Necklaces", MetalPurity: MetalOneGramGold, StoneType: StonePearl,
			Images:      []string{"https://images.unsplash.com/photo-1599643478518-a784e5dc4c8f?auto=format&fit=crop&q=80&w=800"},
			StockStatus: MadeToOrder, Weight: "48g", Hallmark: "Handmade", IsNew: true, IsPopular: true, Reviews: []Review{},
		},
		{
			ID: "n2", SKU: "AUR-NK-002", Name: "Matte Finish Mango Necklace",
			Description: "Classic Mango Mala handcrafted in premium matte gold finish, perfect for festive attire.",
			BasePrice:   4200, Discount: IntPtr(12), Category: "Necklaces", MetalPurity: MetalOneGramGold, StoneType: StoneRuby,
			Images:      []string{"https://images.unsplash.com/photo-1626497748470-561d842f01f5?auto=format&fit=crop&q=80&w=800"},
			StockStatus: InStock, Weight: "38g", Hallmark: "Handmade", IsNew: false, IsPopular: true, Reviews: []Review{},
		},
		{
			ID: "n3", SKU: "AUR-NK-003", Name: "Filigree Locket Choker",
			Description: "Intricate handmade filigree choker with a central pendant featuring traditional Nakshi work.",
			BasePrice:   3200, Discount: IntPtr(10), Category: "Necklaces", MetalPurity: MetalOneGramGold, StoneType: StoneNone,
			Images:      []string{"https://images.unsplash.com/photo-1515562141207-7a88fb7ce338?auto=format&fit=crop&q=80&w=800"},
			StockStatus: InStock, Weight: "22g", Hallmark: "Handmade", IsNew: true, IsPopular: false, Reviews: []Review{},
		},
		{
			ID: "e1", SKU: "AUR-ER-001", Name: "Bridal Chandbali Jhumkas",
			Description: "Royal bell-shaped handmade earrings with dangling pearls and ruby studs. 1 gram gold plated.",
			BasePrice:   1950, Discount: IntPtr(15), Category: "Earrings", MetalPurity: MetalOneGramGold, StoneType: StoneRuby,
			Images:      []string{"https://images.unsplash.com/photo-1630019058353-5ff322399882?auto=format&fit=crop&q=80&w=800"},
			StockStatus: InStock, Weight: "16g", Hallmark: "Handmade", IsNew: true, IsPopular: true, Reviews: []Review{},
		},
		{
			ID: "e2", SKU: "AUR-ER-002", Name: "Pearl Drop Nakshi Studs",
			Description: "Hand-carved gold studs featuring intricate Nakshi work and premium shell pearls.",
			BasePrice:   1250, Discount: IntPtr(10), Category: "Earrings", MetalPurity: MetalOneGramGold, StoneType: StonePearl,
			Images:      []string{"https://images.unsplash.com/photo-1535632066927-ab7c9ab60908?auto=format&fit=crop&q=80&w=800"},
			StockStatus: InStock, Weight: "12g", Hallmark: "Handmade", IsNew: false, IsPopular: false, Reviews: []Review{},
		},
		{
			ID: "e3", SKU: "AUR-ER-003", Name: "Meenakari Peacock Danglers",
			Description: "Vibrant hand-painted meenakari earrings with gold plating and artisan floral motifs.",
			BasePrice:   890, Discount: IntPtr(5), Category: "Earrings", MetalPurity: MetalOneGramGold, StoneType: StoneNone,
			Images:      []string{"https://images.unsplash.com/photo-1629227314026-02e112ffb374?auto=format&fit=crop&q=80&w=800"},
			StockStatus: InStock, Weight: "9g", Hallmark: "Handmade", IsNew: true, IsPopular: true, Reviews: []Review{},
		},
		{
			ID: "b1", SKU: "AUR-BR-001", Name: "Goddess Lakshmi Kada",
			Description: "Broad openable bangle with goddess Lakshmi motifs and semi-precious ruby stones.",
			BasePrice:   3500, Discount: IntPtr(18), Category: "Bracelets", MetalPurity: MetalOneGramGold, StoneType: StoneRuby,
			Images:      []string{"https://images.unsplash.com/photo-1611591437281-460bfbe1220a?auto=format&fit=crop&q=80&w=800"},
			StockStatus: InStock, Weight: "28g", Hallmark: "Handmade", IsNew: true, IsPopular: true, Reviews: []Review{},
		},
		{
			ID: "b2", SKU: "AUR-BR-002", Name: "Artisan Bead Chain Bracelet",
			Description: "Thin gold chain bracelet with tiny handmade gold beads, perfect for daily elegance.",
			BasePrice:   1250, Discount: IntPtr(10), Category: "Bracelets", MetalPurity: MetalOneGramGold, StoneType: StonePearl,
			Images:      []string{"https://images.unsplash.com/photo-1573408302185-9127ff5f6133?auto=format&fit=crop&q=80&w=800"},
			StockStatus: InStock, Weight: "9g", Hallmark: "Handmade", IsNew: false, IsPopular: false, Reviews: []Review{},
		},
		{
			ID: "b3", SKU: "AUR-BR-003", Name: "Dual Peacock Bangle Set",
			Description: "Set of two handmade bangles with intricate dual peacock carvings and a matte gold finish.",
			BasePrice:   3800, Discount: IntPtr(15), Category: "Bracelets", MetalPurity: MetalOneGramGold, StoneType: StoneNone,
			Images:      []string{"https://images.unsplash.com/photo-1535556116002-6281ff3e9f36?auto=format&fit=crop&q=80&w=800"},
			StockStatus: InStock, Weight: "34g", Hallmark: "Handmade", IsNew: true, IsPopular: true, Reviews: []Review{},
		},
	}
}

// SeedSiteContent returns the default storefront copy
func SeedSiteContent() SiteContent {
	return SiteContent{
		Hero: Hero{
			Title:    "Handmade Treasures of Indian Heritage",
			Subtitle: "Discover the timeless elegance of artisanal 1-gram gold jewelry crafted with soul.",
			ImageURL: "https://images.unsplash.com/photo-1589128777073-263566ae5e4d?auto=format&fit=crop&q=80&w=1920",
		},
		Philosophy: Philosophy{
			Quote:  "Jewelry is a reflection of the artisan's hands and the wearer's heart, a bridge between tradition and the modern soul.",
			Author: "Aurelia Heritage Circle",
		},
		Social: Social{
			Instagram: "@aurelia_heritage_gold",
			Facebook:  "Aurelia Luxe Handmade",
			Pinterest: "aurelia_luxe_indian_jewelry",
		},
	}
}

const (
	DefaultAdminID    = "admin"
	DefaultAdminEmail = "admin@aurelia.com"
	DefaultAdminName  = "Boutique Curator"
)

// SeedAdmin returns the built-in curator account. The caller supplies the password hash.
func SeedAdmin(email, passwordHash string) User {
	if email == "" {
		email = DefaultAdminEmail
	}
	return User{
		ID:           DefaultAdminID,
		Email:        NormalizeEmail(email),
		PasswordHash: passwordHash,
		Name:         DefaultAdminName,
		IsAdmin:      true,
		IsApproved:   true,
		IsSubscribed: true,
		Wishlist:     []string{},
		OrderHistory: []Order{},
	}
}
