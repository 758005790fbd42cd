package domain

// SampleProducts returns the fixture catalog every new session starts with.
// A fresh slice is returned on each call so sessions never share backing arrays.
func SampleProducts() []Product {
	return []Product{
		{
			ID:          "1",
			Name:        "Wireless Headphones",
			Description: "High-quality wireless headphones with noise cancellation and 30-hour battery life. Perfect for music lovers and professionals.",
			Price:       199.99,
			Stock:       25,
		},
		{
			ID:          "2",
			Name:        "Organic Cotton T-Shirt",
			Description: "Comfortable and sustainable organic cotton t-shirt available in multiple colors. Made from 100% organic materials.",
			Price:       29.99,
			Stock:       50,
		},
		{
			ID:          "3",
			Name:        "Smart Coffee Maker",
			Description: "WiFi-enabled coffee maker with programmable settings and smartphone app control. Brew perfect coffee every time.",
			Price:       149.99,
			Stock:       15,
		},
		{
			ID:          "4",
			Name:        "Yoga Mat Premium",
			Description: "Non-slip premium yoga mat with excellent grip and cushioning for all yoga practices. Eco-friendly materials.",
			Price:       79.99,
			Stock:       30,
		},
		{
			ID:          "5",
			Name:        "JavaScript: The Complete Guide",
			Description: "Comprehensive guide to modern JavaScript programming with practical examples and projects. Updated for 2024.",
			Price:       39.99,
			Stock:       100,
		},
		{
			ID:          "6",
			Name:        "Moisturizing Face Cream",
			Description: "Hydrating face cream with natural ingredients suitable for all skin types. Dermatologist tested and approved.",
			Price:       24.99,
			Stock:       75,
		},
	}
}
