// Package mockdata is the fixed record set served when no database is
// configured. Timestamps are relative to the time passed in so listings
// keep a stable newest-first order.
package mockdata

import (
	"time"

	"github.com/aseid1997/rejeb-arabian-mejlis/internal/domain"
)

const day = 24 * time.Hour

// StorefrontProductCount is how many of Products the public catalog shows.
const StorefrontProductCount = 4

// Products returns the full demo product list. The first
// StorefrontProductCount entries are the storefront catalog; the admin panel
// lists all of them.
func Products(now time.Time) []domain.Product {
	return []domain.Product{
		{
			ID:            "1",
			Name:          "Royal Majlis Set",
			NameAm:        "ንጉሣዊ መጅሊስ ስብስብ",
			Category:      domain.CategoryMajlis,
			Price:         125000,
			ImageURL:      placeholder("Royal+Majlis+Set"),
			Description:   "Luxurious traditional Arabian majlis with gold accents and premium fabrics.",
			DescriptionAm: "በወርቅ ማስዋቢያዎች እና ከፍተኛ ጥራት ያላቸው ጨርቆች የተሰራ ቅንጦተኛ ባህላዊ የአረብ መጅሊስ።",
			InStock:       true,
			CreatedAt:     now,
		},
		{
			ID:            "2",
			Name:          "Golden Sofa Collection",
			NameAm:        "የወርቅ ሶፋ ስብስብ",
			Category:      domain.CategorySofas,
			Price:         85000,
			ImageURL:      placeholder("Golden+Sofa+Collection"),
			Description:   "Elegant sofa set with golden embroidery and comfortable seating.",
			DescriptionAm: "በወርቅ ጥልፍ እና ምቹ መቀመጫ የተሰራ ውብ ሶፋ ስብስብ።",
			InStock:       true,
			CreatedAt:     now.Add(-1 * day),
		},
		{
			ID:            "3",
			Name:          "Palace Bedroom Set",
			NameAm:        "የቤተ መንግስት የመኝታ ክፍል ስብስብ",
			Category:      domain.CategoryBeds,
			Price:         95000,
			ImageURL:      placeholder("Palace+Bedroom+Set"),
			Description:   "Majestic bedroom furniture fit for royalty with intricate carvings.",
			DescriptionAm: "ውስብስብ ቅርጻ ቅርጾች ያሉት ለንጉሣዊነት የሚመጥን ግርማ ሞገስ ያለው የመኝታ ክፍል እቃ።",
			InStock:       true,
			CreatedAt:     now.Add(-2 * day),
		},
		{
			ID:            "4",
			Name:          "Silk Curtain Collection",
			NameAm:        "የሐር መጋረጃ ስብስብ",
			Category:      domain.CategoryCurtains,
			Price:         35000,
			ImageURL:      placeholder("Silk+Curtain+Collection"),
			Description:   "Premium silk curtains with traditional Arabian patterns.",
			DescriptionAm: "ባህላዊ የአረብ ንድፎች ያሉት ከፍተኛ ጥራት ያለው የሐር መጋረጃ።",
			InStock:       true,
			CreatedAt:     now.Add(-3 * day),
		},
		{
			ID:            "5",
			Name:          "Executive Office Set",
			NameAm:        "የአስፈፃሚ ቢሮ ስብስብ",
			Category:      domain.CategoryMajlis,
			Price:         150000,
			ImageURL:      placeholder("Executive+Office+Set"),
			Description:   "Professional majlis set perfect for executive offices and meeting rooms.",
			DescriptionAm: "ለአስፈፃሚ ቢሮዎች እና የስብሰባ ክፍሎች ፍጹም የሆነ ሙያዊ መጅሊስ ስብስብ።",
			InStock:       true,
			CreatedAt:     now.Add(-4 * day),
		},
		{
			ID:            "6",
			Name:          "Luxury Dining Set",
			NameAm:        "የቅንጦት የመመገቢያ ስብስብ",
			Category:      domain.CategorySofas,
			Price:         120000,
			ImageURL:      placeholder("Luxury+Dining+Set"),
			Description:   "Elegant dining furniture with traditional craftsmanship.",
			DescriptionAm: "ባህላዊ የእጅ ስራ ያለው ውብ የመመገቢያ እቃ።",
			InStock:       false,
			CreatedAt:     now.Add(-5 * day),
		},
	}
}

func StorefrontProducts(now time.Time) []domain.Product {
	return Products(now)[:StorefrontProductCount]
}

func Categories(now time.Time) []domain.ProductCategory {
	return []domain.ProductCategory{
		{ID: "majlis", Name: "Majlis", CreatedAt: now},
		{ID: "sofas", Name: "Sofas", CreatedAt: now.Add(-1 * day)},
		{ID: "beds", Name: "Beds", CreatedAt: now.Add(-2 * day)},
		{ID: "curtains", Name: "Curtains", CreatedAt: now.Add(-3 * day)},
	}
}

func Contacts(now time.Time) []domain.Contact {
	return []domain.Contact{
		{
			ID:        "1",
			Name:      "John Doe",
			Email:     "john@example.com",
			Message:   "I am interested in your Royal Majlis Set. Could you please provide more details about the materials and delivery options?",
			Language:  domain.LanguageEnglish,
			CreatedAt: now,
		},
		{
			ID:        "2",
			Name:      "አበበ ተስፋዬ",
			Email:     "abebe@example.com",
			Message:   "የሶፋ ስብስቦችን መመልከት እፈልጋለሁ። የዋጋ ዝርዝር ላክልኝ።",
			Language:  domain.LanguageAmharic,
			CreatedAt: now.Add(-1 * day),
		},
		{
			ID:        "3",
			Name:      "Sarah Ahmed",
			Email:     "sarah@example.com",
			Message:   "Do you offer custom curtain designs? I need something specific for my living room.",
			Language:  domain.LanguageEnglish,
			CreatedAt: now.Add(-2 * day),
		},
		{
			ID:        "4",
			Name:      "ፋጢማ አሊ",
			Email:     "fatima@example.com",
			Message:   "የመኝታ ክፍል እቃዎች ስለ ዋጋ እና ስለ ጥራት መረጃ ይስጡኝ።",
			Language:  domain.LanguageAmharic,
			CreatedAt: now.Add(-3 * day),
		},
	}
}

func Orders(now time.Time) []domain.Order {
	return []domain.Order{
		{
			ID: "1",
			Customer: domain.CustomerInfo{
				Name:    "Sarah Ahmed",
				Email:   "sarah@example.com",
				Phone:   "+251-91-123-4567",
				Address: "Bole, Addis Ababa",
			},
			Items: []domain.CartLine{
				{ProductID: "1", Name: "Royal Majlis Set", NameAm: "ንጉሣዊ መጅሊስ ስብስብ", Quantity: 1, Price: 125000},
			},
			TotalAmount: 125000,
			Currency:    "ETB",
			Status:      domain.OrderStatusPending,
			CreatedAt:   now,
		},
		{
			ID: "2",
			Customer: domain.CustomerInfo{
				Name:    "Ahmed Hassan",
				Email:   "ahmed@example.com",
				Phone:   "+251-91-234-5678",
				Address: "Piazza, Addis Ababa",
			},
			Items: []domain.CartLine{
				{ProductID: "2", Name: "Golden Sofa Collection", NameAm: "የወርቅ ሶፋ ስብስብ", Quantity: 1, Price: 85000},
				{ProductID: "4", Name: "Silk Curtain Collection", NameAm: "የሐር መጋረጃ ስብስብ", Quantity: 2, Price: 35000},
			},
			TotalAmount: 155000,
			Currency:    "ETB",
			Status:      domain.OrderStatusConfirmed,
			CreatedAt:   now.Add(-1 * day),
		},
		{
			ID: "3",
			Customer: domain.CustomerInfo{
				Name:    "ሙሉጌታ ወርቁ",
				Email:   "mulugeta@example.com",
				Phone:   "+251-91-345-6789",
				Address: "Merkato, Addis Ababa",
			},
			Items: []domain.CartLine{
				{ProductID: "3", Name: "Palace Bedroom Set", NameAm: "የቤተ መንግስት የመኝታ ክፍል ስብስብ", Quantity: 1, Price: 95000},
			},
			TotalAmount: 95000,
			Currency:    "ETB",
			Status:      domain.OrderStatusProcessing,
			CreatedAt:   now.Add(-2 * day),
		},
	}
}

func placeholder(text string) string {
	return "/placeholder.svg?height=400&width=600&text=" + text
}
