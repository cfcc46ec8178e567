package seeders

import (
	"fmt"
	"log"

	"dormly/models/dorm"
	"dormly/models/room"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type seedRoomType struct {
	name         string
	rentPerMonth float64
	rentPerDay   *float64
	rooms        []string
}

type seedDorm struct {
	dorm       dorm.Dorm
	facilities []string
	roomTypes  []seedRoomType
}

func daily(v float64) *float64 { return &v }

// demoDorms are a few listings around Bangkok and Chiang Mai, enough to try
// the geo, price and availability filters.
var demoDorms = []seedDorm{
	{
		dorm: dorm.Dorm{
			Name: "Baan Suan Dorm", Lat: 13.7563, Long: 100.5018,
			Address: "12 Phra Athit Rd", Prov: "Bangkok", Dist: "Phra Nakhon", Subdist: "Chana Songkhram", PostalCode: "10200",
			AvgScore: 4.5, Likes: 120, Medias: pq.StringArray{"https://images.dormly.dev/baan-suan/1.jpg"},
		},
		facilities: []string{"Wi-Fi", "Laundry", "Bicycle parking"},
		roomTypes: []seedRoomType{
			{name: "Standard Fan", rentPerMonth: 3500, rooms: []string{"101", "102", "103"}},
			{name: "Deluxe Air", rentPerMonth: 5500, rentPerDay: daily(450), rooms: []string{"201", "202"}},
		},
	},
	{
		dorm: dorm.Dorm{
			Name: "Siam Residence", Lat: 13.7460, Long: 100.5340,
			Address: "88 Rama I Rd", Prov: "Bangkok", Dist: "Pathum Wan", Subdist: "Pathum Wan", PostalCode: "10330",
			AvgScore: 4.8, Likes: 310, Medias: pq.StringArray{"https://images.dormly.dev/siam/1.jpg", "https://images.dormly.dev/siam/2.jpg"},
		},
		facilities: []string{"Wi-Fi", "Fitness", "Keycard access", "CCTV"},
		roomTypes: []seedRoomType{
			{name: "Studio", rentPerMonth: 8500, rentPerDay: daily(700), rooms: []string{"S1", "S2", "S3", "S4"}},
		},
	},
	{
		dorm: dorm.Dorm{
			Name: "Nimman Loft", Lat: 18.7960, Long: 98.9670,
			Address: "5 Nimmanhaemin Soi 9", Prov: "Chiang Mai", Dist: "Mueang Chiang Mai", Subdist: "Suthep", PostalCode: "50200",
			AvgScore: 4.2, Likes: 75,
		},
		facilities: []string{"Wi-Fi", "Parking"},
		roomTypes: []seedRoomType{
			{name: "Loft Single", rentPerMonth: 4200, rooms: []string{"L1", "L2"}},
			{name: "Loft Twin", rentPerMonth: 6000, rooms: []string{"L3"}},
		},
	},
}

// SeedDorms inserts the demo dorms that are not present yet, matched by
// name. Each dorm is inserted with its facilities, room types and rooms in
// one transaction.
func SeedDorms(db *gorm.DB) error {
	log.Printf("🔍 Checking demo dorm data...")

	var existingNames []string
	if err := db.Model(&dorm.Dorm{}).Pluck("dorm_name", &existingNames).Error; err != nil {
		return fmt.Errorf("failed to fetch existing dorm names: %w", err)
	}
	existing := make(map[string]bool, len(existingNames))
	for _, name := range existingNames {
		existing[name] = true
	}

	var missing []seedDorm
	for _, d := range demoDorms {
		if !existing[d.dorm.Name] {
			missing = append(missing, d)
		}
	}

	log.Printf("📊 Expected dorms: %d, existing: %d, missing: %d", len(demoDorms), len(existingNames), len(missing))
	if len(missing) == 0 {
		log.Printf("✅ All demo dorms are already present. No seeding needed.")
		return nil
	}

	for _, d := range missing {
		if err := db.Transaction(func(tx *gorm.DB) error { return insertDorm(tx, d) }); err != nil {
			return fmt.Errorf("failed to seed dorm %s: %w", d.dorm.Name, err)
		}
		log.Printf("✅ Added: %s", d.dorm.Name)
	}
	return nil
}

func insertDorm(tx *gorm.DB, d seedDorm) error {
	listing := d.dorm
	if err := tx.Create(&listing).Error; err != nil {
		return err
	}
	if err := linkFacilities(tx, &listing, d.facilities); err != nil {
		return err
	}
	for _, rt := range d.roomTypes {
		roomType := dorm.RoomType{
			DormID:       listing.ID,
			Name:         rt.name,
			RentPerMonth: rt.rentPerMonth,
			RentPerDay:   rt.rentPerDay,
		}
		if err := tx.Create(&roomType).Error; err != nil {
			return err
		}
		for _, name := range rt.rooms {
			r := room.Room{RoomTypeID: roomType.ID, Name: name, Status: room.RoomStatusAvailable}
			if err := tx.Omit("RoomType").Create(&r).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// linkFacilities attaches the named facilities to listing, creating the
// ones that do not exist yet.
func linkFacilities(tx *gorm.DB, listing *dorm.Dorm, names []string) error {
	if len(names) == 0 {
		return nil
	}
	facilities := make([]dorm.Facility, 0, len(names))
	for _, name := range names {
		var f dorm.Facility
		if err := tx.Where(dorm.Facility{Name: name}).FirstOrCreate(&f).Error; err != nil {
			return err
		}
		facilities = append(facilities, f)
	}
	return tx.Model(listing).Association("Facilities").Append(&facilities)
}
