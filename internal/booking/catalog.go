package booking

import "github.com/NavidZamanKhan/Bus-Ticket-Booking-System/internal/domain"

// DefaultCatalog returns the demo trip catalog used to seed an empty
// store. Duplicate operator names on different routes are intentional.
func DefaultCatalog() []*domain.Bus {
	entries := []struct {
		name        string
		origin      string
		destination string
		departure   string
		seats       int
		price       int64
	}{
		{"Ena Transport", "Sylhet", "Dhaka", "08:00", 40, 800},
		{"Hanif Enterprise", "Sylhet", "Chittagong", "09:00", 40, 900},
		{"Shyamoli Paribahan", "Dhaka", "Chittagong", "10:30", 40, 1000},
		{"Desh Travels", "Dhaka", "Sylhet", "11:00", 40, 850},
		{"London Express", "Sylhet", "Cumilla", "14:00", 40, 700},
		{"Saudia Coach", "Sylhet", "Feni", "15:30", 40, 650},
		{"Green Line Paribahan", "Dhaka", "Chittagong", "07:30", 40, 1200},
		{"Shohagh Paribahan", "Dhaka", "Cox's Bazar", "21:00", 40, 1400},
		{"SilkLine", "Sylhet", "Dhaka", "17:45", 40, 800},
		{"Unique Paribahan", "Sylhet", "Chittagong", "06:30", 40, 900},
		{"Year-71 Express", "Sylhet", "Khulna", "16:00", 40, 1300},
		{"Shyamoli NR Travels", "Sylhet", "Jessore", "20:00", 40, 1350},
		{"Ena Transport", "Sylhet", "Rajshahi", "07:45", 40, 1400},
		{"London Express", "Sylhet", "Bogra", "12:30", 40, 1100},
		{"Hanif Enterprise", "Sylhet", "Feni", "13:45", 40, 700},
		{"Desh Travels", "Dhaka", "Rajshahi", "09:15", 40, 1000},
		{"Tungipara Express", "Dhaka", "Gopalganj", "06:45", 40, 600},
		{"S Alam Paribahan", "Chittagong", "Cox's Bazar", "05:30", 40, 900},
		{"Ena Transport", "Sylhet", "Cox's Bazar", "22:15", 40, 1700},
		{"Saintmartin Paribahan", "Dhaka", "Teknaf", "23:00", 40, 1800},
		{"Green Line Paribahan", "Sylhet", "Dhaka", "15:00", 40, 1200},
		{"Shohagh Paribahan", "Sylhet", "Dhaka", "23:45", 40, 900},
		{"Haque Enterprise", "Sylhet", "Moulvibazar", "10:00", 40, 400},
	}

	buses := make([]*domain.Bus, 0, len(entries))
	for _, e := range entries {
		// Entries are static and valid; construction cannot fail.
		b, err := domain.NewBus(e.name, e.origin, e.destination, e.departure, e.seats, e.price)
		if err != nil {
			panic(err)
		}
		buses = append(buses, b)
	}
	return buses
}
