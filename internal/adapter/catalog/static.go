package catalog

import (
	"github.com/niksmo/electrostyle/internal/core/domain"
	"github.com/niksmo/electrostyle/internal/core/port"
	"github.com/shopspring/decimal"
)

var _ port.ProductsSource = Static{}

// Static is the fixed storefront catalog.
type Static struct{}

func (Static) Products() []domain.Product {
	return products
}

func (Static) Categories() []domain.Category {
	return categories
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func originalPrice(s string) *decimal.Decimal {
	d := price(s)
	return &d
}

var products = []domain.Product{
	{
		ID:            "1",
		Name:          "Samsung 65\" QLED 4K Smart TV",
		Category:      "TVs",
		Price:         price("1299.99"),
		OriginalPrice: originalPrice("1599.99"),
		Image:         "https://images.unsplash.com/photo-1593359677879-a4bb92f829d1?w=800&q=80",
		Rating:        4.5,
		Reviews:       342,
		InStock:       true,
		IsFeatured:    true,
		Brand:         "Samsung",
		Description:   "Experience stunning picture quality with Quantum Dot technology and 4K resolution.",
		Specs: map[string]string{
			"Screen Size":    "65 inches",
			"Resolution":     "4K UHD (3840 x 2160)",
			"HDR":            "HDR10+",
			"Smart Platform": "Tizen OS",
		},
	},
	{
		ID:            "2",
		Name:          "LG French Door Refrigerator",
		Category:      "Refrigerators",
		Price:         price("2499.99"),
		Image:         "https://images.unsplash.com/photo-1571175443880-49e1d25b2bc5?w=800&q=80",
		Rating:        4.8,
		Reviews:       189,
		InStock:       true,
		IsFeatured:    true,
		IsNew:         true,
		Brand:         "LG",
		Description:   "Spacious French door refrigerator with InstaView Door-in-Door and smart cooling.",
		Specs: map[string]string{
			"Capacity":    "28 cu. ft.",
			"Type":        "French Door",
			"Ice Maker":   "Dual Ice Maker",
			"Energy Star": "Yes",
		},
	},
	{
		ID:            "3",
		Name:          "Whirlpool Front Load Washer",
		Category:      "Washers",
		Price:         price("899.99"),
		OriginalPrice: originalPrice("1099.99"),
		Image:         "https://images.unsplash.com/photo-1626806787461-102c1bfaaea1?w=800&q=80",
		Rating:        4.6,
		Reviews:       267,
		InStock:       true,
		Brand:         "Whirlpool",
		Description:   "High-efficiency front load washer with steam cleaning and Load & Go dispenser.",
		Specs: map[string]string{
			"Capacity":    "5.0 cu. ft.",
			"Type":        "Front Load",
			"Spin Speed":  "1,200 RPM",
			"Steam Clean": "Yes",
		},
	},
	{
		ID:            "4",
		Name:          "Ninja Air Fryer Max XL",
		Category:      "Small Appliances",
		Price:         price("149.99"),
		Image:         "https://images.unsplash.com/photo-1585515320310-259814833e62?w=800&q=80",
		Rating:        4.7,
		Reviews:       892,
		InStock:       true,
		IsNew:         true,
		Brand:         "Ninja",
		Description:   "Cook crispy, delicious meals with 75% less fat using Max Crisp Technology.",
		Specs: map[string]string{
			"Capacity":          "5.5 Quarts",
			"Wattage":           "1,750W",
			"Temperature Range": "105°F - 400°F",
			"Functions":         "Air Fry, Roast, Reheat, Dehydrate",
		},
	},
	{
		ID:            "5",
		Name:          "Sony 55\" OLED 4K TV",
		Category:      "TVs",
		Price:         price("1799.99"),
		Image:         "https://images.unsplash.com/photo-1593359677879-a4bb92f829d1?w=800&q=80",
		Rating:        4.9,
		Reviews:       156,
		InStock:       true,
		Brand:         "Sony",
		Description:   "Premium OLED display with perfect blacks and vibrant colors powered by Cognitive Processor XR.",
		Specs: map[string]string{
			"Screen Size":  "55 inches",
			"Resolution":   "4K UHD",
			"Panel Type":   "OLED",
			"Refresh Rate": "120Hz",
		},
	},
	{
		ID:            "6",
		Name:          "KitchenAid Stand Mixer",
		Category:      "Small Appliances",
		Price:         price("379.99"),
		OriginalPrice: originalPrice("449.99"),
		Image:         "https://images.unsplash.com/photo-1578645510447-e20b4311e3ce?w=800&q=80",
		Rating:        4.9,
		Reviews:       1245,
		InStock:       true,
		IsFeatured:    true,
		Brand:         "KitchenAid",
		Description:   "Iconic stand mixer with 10 speeds and tilt-head design for easy bowl access.",
		Specs: map[string]string{
			"Capacity":    "5 Quarts",
			"Speeds":      "10",
			"Power":       "325 Watts",
			"Attachments": "Flat Beater, Wire Whip, Dough Hook",
		},
	},
	{
		ID:            "7",
		Name:          "Bosch Dishwasher",
		Category:      "Dishwashers",
		Price:         price("849.99"),
		Image:         "https://images.unsplash.com/photo-1585659722983-3a675dabf23d?w=800&q=80",
		Rating:        4.5,
		Reviews:       234,
		InStock:       false,
		Brand:         "Bosch",
		Description:   "Quiet and efficient dishwasher with flexible rack system and AutoAir drying.",
		Specs: map[string]string{
			"Noise Level":    "44 dBA",
			"Place Settings": "16",
			"Cycles":         "6",
			"Energy Star":    "Yes",
		},
	},
	{
		ID:            "8",
		Name:          "Dyson Vacuum Cleaner V15",
		Category:      "Small Appliances",
		Price:         price("649.99"),
		Image:         "https://images.unsplash.com/photo-1558317374-067fb5f30001?w=800&q=80",
		Rating:        4.8,
		Reviews:       567,
		InStock:       true,
		IsFeatured:    true,
		IsNew:         true,
		Brand:         "Dyson",
		Description:   "Powerful cordless vacuum with laser dust detection and intelligent suction.",
		Specs: map[string]string{
			"Type":          "Cordless Stick",
			"Runtime":       "Up to 60 minutes",
			"Suction Power": "230 AW",
			"Filtration":    "HEPA",
		},
	},
}

var categories = []domain.Category{
	{
		Name:  "TVs",
		Image: "https://images.unsplash.com/photo-1593359677879-a4bb92f829d1?w=400&q=80",
		Count: 45,
	},
	{
		Name:  "Refrigerators",
		Image: "https://images.unsplash.com/photo-1571175443880-49e1d25b2bc5?w=400&q=80",
		Count: 32,
	},
	{
		Name:  "Washers",
		Image: "https://images.unsplash.com/photo-1626806787461-102c1bfaaea1?w=400&q=80",
		Count: 28,
	},
	{
		Name:  "Small Appliances",
		Image: "https://images.unsplash.com/photo-1585515320310-259814833e62?w=400&q=80",
		Count: 87,
	},
}
