// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package stock

import (
	"time"

	"github.com/google/uuid"

	"mgepcar/internal/models"
)

// Fallback returns the bundled showroom dataset used whenever the database
// cannot provide listings. The vehicles mirror the dealership's long-running
// stock so the public site stays presentable during outages.
func Fallback() []models.Listing {
	base := time.Date(2026, time.January, 15, 12, 0, 0, 0, time.UTC)
	cars := []models.Listing{
		{
			ID:           uuid.MustParse("a1c40000-0000-4000-8000-000000000001"),
			Slug:         "audi-a4-2-0-tfsi-prestige",
			Brand:        "Audi",
			Model:        "A4",
			Version:      "2.0 TFSI Prestige",
			YearFab:      2017,
			YearMod:      2017,
			Price:        169_900,
			Mileage:      33_000,
			Transmission: models.TransmissionAutomatic,
			Fuel:         "Gasolina",
			Color:        "Prata",
			Image:        "https://picsum.photos/seed/mge-audi-a4/800/600",
			Images: []string{
				"https://picsum.photos/seed/mge-audi-a4/800/600",
				"https://picsum.photos/seed/mge-audi-a4-b/800/600",
				"https://picsum.photos/seed/mge-audi-a4-c/800/600",
			},
			Description: "Veículo impecável com teto solar, bancos em couro e revisões em dia na concessionária.",
			Features:    []string{"Teto Solar", "Bancos de Couro", "Sensor de Estacionamento", "Câmera de Ré"},
			IsFeatured:  true,
		},
		{
			ID:           uuid.MustParse("a1c40000-0000-4000-8000-000000000002"),
			Slug:         "jaguar-xf-2-0-r-sport",
			Brand:        "Jaguar",
			Model:        "XF",
			Version:      "2.0 R-Sport",
			YearFab:      2018,
			YearMod:      2018,
			Price:        245_000,
			Mileage:      25_000,
			Transmission: models.TransmissionAutomatic,
			Fuel:         "Gasolina",
			Color:        "Preto",
			Image:        "https://picsum.photos/seed/mge-jaguar-xf/800/600",
			Description:  "Puro luxo e desempenho. Motor V6 com sistema de som Meridian premium.",
			Features:     []string{"Som Meridian", "Teto Panorâmico", "Head-up Display"},
		},
		{
			ID:           uuid.MustParse("a1c40000-0000-4000-8000-000000000003"),
			Slug:         "bmw-serie-3-320i-m-sport",
			Brand:        "BMW",
			Model:        "Serie 3",
			Version:      "320i M Sport",
			YearFab:      2017,
			YearMod:      2017,
			Price:        189_900,
			Mileage:      33_000,
			Transmission: models.TransmissionAutomatic,
			Fuel:         "Flex",
			Color:        "Azul Portimao",
			Image:        "https://picsum.photos/seed/mge-bmw-320i/800/600",
			Description:  "A cor exclusiva mais desejada. Tecnologia e prazer ao dirigir garantidos.",
			Features:     []string{"M Sport Package", "Digital Cockpit", "Rodas 19"},
		},
		{
			ID:           uuid.MustParse("a1c40000-0000-4000-8000-000000000004"),
			Slug:         "bmw-420i-cabrio-m-sport",
			Brand:        "BMW",
			Model:        "420i",
			Version:      "Cabrio M Sport",
			YearFab:      2019,
			YearMod:      2019,
			Price:        210_000,
			Mileage:      32_000,
			Transmission: models.TransmissionAutomatic,
			Fuel:         "Gasolina",
			Color:        "Preto",
			Image:        "https://picsum.photos/seed/mge-bmw-420i/800/600",
			Description:  "Elegância esportiva em um coupé de tirar o fôlego. Segundo dono, impecável.",
			Features:     []string{"Cabriolet", "Bancos Aquecidos", "Harman Kardon"},
			IsFeatured:   true,
		},
		{
			ID:           uuid.MustParse("a1c40000-0000-4000-8000-000000000005"),
			Slug:         "bmw-m4-competition",
			Brand:        "BMW",
			Model:        "M4",
			Version:      "Competition",
			YearFab:      2023,
			YearMod:      2023,
			Price:        689_900,
			Mileage:      4_200,
			Transmission: models.TransmissionAutomatic,
			Fuel:         "Gasolina",
			Color:        "Frozen Gray",
			Image:        "https://picsum.photos/seed/mge-bmw-m4/800/600",
			Images: []string{
				"https://picsum.photos/seed/mge-bmw-m4-b/800/600",
				"https://picsum.photos/seed/mge-bmw-m4-c/800/600",
				"https://picsum.photos/seed/mge-bmw-m4-d/800/600",
				"https://picsum.photos/seed/mge-bmw-m4-e/800/600",
			},
			Description: "Veículo impecável, único dono, todas as revisões feitas na concessionária. Possui pacote M-Track, bancos em concha de fibra de carbono.",
			Features:    []string{"Pacote M-Track", "Bancos Carbono", "Harman Kardon", "PPF Frontal"},
			IsFeatured:  true,
		},
		{
			ID:           uuid.MustParse("a1c40000-0000-4000-8000-000000000006"),
			Slug:         "mercedes-benz-e300-exclusive",
			Brand:        "Mercedes-Benz",
			Model:        "E300",
			Version:      "Exclusive",
			YearFab:      2021,
			YearMod:      2021,
			Price:        299_900,
			Mileage:      8_000,
			Transmission: models.TransmissionAutomatic,
			Fuel:         "Gasolina",
			Color:        "Prata",
			Image:        "https://picsum.photos/seed/mge-mercedes-e300/800/600",
			Description:  "Estado de zero quilômetro. Completa com todos os pacotes de assistência.",
			Features:     []string{"Driving Assistant", "Burmester Sound", "Soft Close"},
		},
	}

	// Spread creation times so created_at DESC ordering is stable: the first
	// entry is the newest, matching how the showroom presents them.
	for i := range cars {
		cars[i].CreatedAt = base.Add(-time.Duration(i) * 24 * time.Hour)
		cars[i].UpdatedAt = cars[i].CreatedAt
	}
	return cars
}
