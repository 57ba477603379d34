package config

// Default returns the built-in demo catalog.
func Default() *Catalog {
	return &Catalog{
		Title:     "Everyday Crew Tee",
		Price:     30.00,
		MainImage: "/images/tee-front.jpg",
		Thumbnails: []Thumbnail{
			{Src: "/images/tee-front-sm.jpg", Full: "/images/tee-front.jpg", Alt: "Front"},
			{Src: "/images/tee-back-sm.jpg", Full: "/images/tee-back.jpg", Alt: "Back"},
			{Src: "/images/tee-detail-sm.jpg", Full: "/images/tee-detail.jpg", Alt: "Fabric detail"},
			{Src: "/images/tee-model.jpg", Alt: "On model"},
		},
		Swatches: []Swatch{
			{Color: "Red", Background: "#c0392b", Image: "/images/tee-red.jpg"},
			{Color: "Navy", Background: "#2c3e50", Image: "/images/tee-navy.jpg"},
			{Color: "Sage", Background: "#8fbc8f"},
			{Color: "Sand", Background: "#d2b48c", Image: "/images/tee-sand.jpg"},
			{Color: "Charcoal", Background: "#36454f", Image: "/images/tee-charcoal.jpg"},
		},
		Sizes:       []string{"XS", "S", "M", "L", "XL"},
		DefaultSize: "M",
		SizeChart: []SizeChartRow{
			{Size: "XS", Chest: "84 cm", Length: "66 cm"},
			{Size: "S", Chest: "90 cm", Length: "69 cm"},
			{Size: "M", Chest: "96 cm", Length: "72 cm"},
			{Size: "L", Chest: "102 cm", Length: "74 cm"},
			{Size: "XL", Chest: "108 cm", Length: "76 cm"},
		},
		Tabs: []Tab{
			{
				ID:       "description",
				Label:    "Description",
				Markdown: "A heavyweight **cotton crew** cut for everyday wear.\n\n- Relaxed fit\n- Ribbed collar\n",
			},
			{
				ID:       "materials",
				Label:    "Materials & Care",
				Markdown: "100% organic cotton, 220 gsm.\n\nMachine wash cold, *tumble dry low*.\n",
			},
			{
				ID:       "reviews",
				Label:    "Reviews",
				Markdown: "> Fits true to size and holds its shape.\n",
			},
		},
		Cards: []Card{
			{Title: "Canvas Tote", Price: 25.00, Image: "/images/tote.jpg"},
			{Title: "Crew Socks", Price: 9.50, Image: "/images/socks.jpg"},
			{Title: "Baseball Cap", Price: 20.00, Image: "/images/cap.jpg"},
		},
		Bundle: Bundle{
			Title:  "Tee + Tote + Cap",
			Prices: []float64{30.00, 25.00, 20.00},
		},
		Storage: StorageConfig{Backend: "memory"},
		Log:     LogConfig{Level: "info", Format: "text"},
		Metrics: MetricsConfig{Namespace: "productpage"},
	}
}
