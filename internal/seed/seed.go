// Package seed loads the initial catalog into an empty store.
package seed

import (
	"context"
	"fmt"
	"log"

	"product-service/internal/models"
	"product-service/internal/repository"
)

// EnsureSeeded bulk-inserts the initial catalog when the active scope is
// empty. A non-empty scope is left untouched.
func EnsureSeeded(ctx context.Context, repo repository.ProductRepository) error {
	count, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count products: %w", err)
	}
	if count > 0 {
		return nil
	}
	if err := repo.SeedMany(ctx, Products()); err != nil {
		return err
	}
	log.Println("Database seeded successfully.")
	return nil
}

// Products returns the initial catalog, ids pre-assigned 1..10. Image paths
// point at blobs already present in the image container.
func Products() []models.Product {
	return []models.Product{
		{
			ID:          1,
			Name:        "UltraSlim X1 Laptop",
			Price:       1299.99,
			Description: "Experience peak performance with the UltraSlim X1. Featuring a 4K InfinityEdge display, i9 processor, and all-day battery life for professionals on the go.",
			Image:       "/images/laptop_x1.jpg",
			Category:    "Computers & Tablets",
			Brand:       "Apex",
		},
		{
			ID:          2,
			Name:        "NoiseGuard Pro Headphones",
			Price:       349.99,
			Description: "Immerse yourself in music with industry-leading noise cancellation. The NoiseGuard Pro offers 30 hours of listening time and plush ear cushions for comfort.",
			Image:       "/images/headphones_pro.jpg",
			Category:    "Audio",
			Brand:       "Aura",
		},
		{
			ID:          3,
			Name:        "Visionary 4K Monitor",
			Price:       499.99,
			Description: "See every detail with the Visionary 27-inch 4K monitor. Perfect for designers and gamers, featuring HDR support and a 144Hz refresh rate.",
			Image:       "/images/monitor_4k.jpg",
			Category:    "Computer Accessories",
			Brand:       "OptiMax",
		},
		{
			ID:          4,
			Name:        "GamerZ Console 5",
			Price:       499.99,
			Description: "Next-gen gaming is here. Play games in stunning 4K at 120fps with ray tracing technology and ultra-fast load times.",
			Image:       "/images/console_5.jpg",
			Category:    "Video Games",
			Brand:       "Nexus",
		},
		{
			ID:          5,
			Name:        "SmartWatch Series 7",
			Price:       399.99,
			Description: "Track your fitness, monitor your health, and stay connected without your phone. Features an always-on Retina display and crack-resistant crystal.",
			Image:       "/images/smartwatch_7.jpg",
			Category:    "Wearable Technology",
			Brand:       "Vital",
		},
		{
			ID:          6,
			Name:        "BlueBeat Portable Speaker",
			Price:       129.99,
			Description: "Take the party anywhere with the BlueBeat. Waterproof, dustproof, and drop-proof, delivering powerful 360-degree sound.",
			Image:       "/images/speaker_blue.jpg",
			Category:    "Audio",
			Brand:       "Roam",
		},
		{
			ID:          7,
			Name:        "ProTab Air Tablet",
			Price:       599.99,
			Description: "Power and portability combined. The ProTab Air features the M1 chip, a stunning Liquid Retina display, and compatibility with the smart pencil.",
			Image:       "/images/tablet_air.jpg",
			Category:    "Computers & Tablets",
			Brand:       "Forge",
		},
		{
			ID:          8,
			Name:        "MechKey RGB Keyboard",
			Price:       149.99,
			Description: "Dominate the competition with the MechKey RGB. Features responsive mechanical switches, customizable macro keys, and vibrant backlighting.",
			Image:       "/images/keyboard_rgb.jpg",
			Category:    "Computer Accessories",
			Brand:       "Zenith",
		},
		{
			ID:          9,
			Name:        "CineView 65\" OLED TV",
			Price:       1999.99,
			Description: "Experience true blacks and rich colors with the CineView OLED. Smart TV capabilities built-in with voice control and AI picture enhancement.",
			Image:       "/images/tv_oled.jpg",
			Category:    "TV & Home Theater",
			Brand:       "Luminos",
		},
		{
			ID:          10,
			Name:        "Bolt External SSD 1TB",
			Price:       159.99,
			Description: "Transfer files in seconds with the Bolt SSD. Rugged design, USB-C connectivity, and read speeds up to 1050MB/s.",
			Image:       "/images/ssd_bolt.jpg",
			Category:    "Computer Accessories",
			Brand:       "Velocity",
		},
	}
}
