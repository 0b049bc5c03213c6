package seed

import (
	"github.com/agriquote/agriquote-backend/pkg/db/models"
	"github.com/agriquote/agriquote-backend/pkg/enums"
	"github.com/agriquote/agriquote-backend/pkg/types"
)

// Users returns the built-in accounts. Callers get a fresh slice every time.
func Users() []models.User {
	return []models.User{
		{
			ID:      "admin1",
			Name:    "System Admin",
			Phone:   "9999999999",
			Role:    enums.RoleAdmin,
			Address: types.Address{District: "Satara"},
		},
		{
			ID:      "cust_requested",
			Name:    "Satish Yadav",
			Phone:   "8600503794",
			Role:    enums.RoleCustomer,
			Address: types.Address{Locality: "Arvi", SubDistrict: "Koregaon", District: "Satara"},
		},
		{
			ID:      "cust1",
			Name:    "Rajesh Patil",
			Phone:   "9876543210",
			Role:    enums.RoleCustomer,
			Address: types.Address{District: "Satara"},
		},
		{
			ID:           "deal1",
			Name:         "Amit Deshmukh",
			Phone:        "8888888888",
			Role:         enums.RoleDealer,
			Address:      types.Address{District: "Satara"},
			ShowroomName: "Deshmukh Tractors",
			Brands:       []string{"Mahindra", "Swaraj"},
			IsApproved:   true,
		},
		{
			ID:           "deal2",
			Name:         "Suresh Auto",
			Phone:        "7777777777",
			Role:         enums.RoleDealer,
			Address:      types.Address{District: "Satara"},
			ShowroomName: "Suresh John Deere",
			Brands:       []string{"John Deere", "Kubota"},
			IsApproved:   true,
		},
	}
}

// Tractors returns the built-in catalog.
func Tractors() []models.Tractor {
	return []models.Tractor{
		{ID: "mah_jivo_225", Brand: "Mahindra", Model: "JIVO 225 DI", Variant: "4WD", HP: 20, Image: "https://images.unsplash.com/photo-1605218427306-0335808b871d?q=80&w=600&auto=format&fit=crop", VideoID: "Sg_J1_2Wv_8"},
		{ID: "t2", Brand: "Mahindra", Model: "JIVO 245 DI", Variant: "4WD", HP: 24, Image: "https://images.unsplash.com/photo-1517643509493-9c8f61555a6d?q=80&w=600&auto=format&fit=crop", VideoID: "qQJvJ5x1i2c"},
		{ID: "t1", Brand: "Mahindra", Model: "575 DI XP Plus", Variant: "2WD", HP: 47, Image: "https://images.unsplash.com/photo-1530267981375-2734035bd5f5?q=80&w=600&auto=format&fit=crop", VideoID: "9p8q7r6s5t4"},
		{ID: "t4", Brand: "Swaraj", Model: "744 FE", Variant: "2WD", HP: 48, Image: "https://images.unsplash.com/photo-1562657520-05e94b2a4778?q=80&w=600&auto=format&fit=crop", VideoID: "g6h7i8j9k0l"},
		{ID: "t3", Brand: "John Deere", Model: "5310", Variant: "Trem IV", HP: 55, Image: "https://picsum.photos/400/300?random=3", VideoID: "y1z2a3b4c5d"},
		{ID: "kub_mu4501", Brand: "Kubota", Model: "MU4501", Variant: "2WD", HP: 45, Image: "https://images.unsplash.com/photo-1595841696677-6489ff3f8cd1?q=80&w=600&auto=format&fit=crop"},
		{ID: "nh_3630_tx", Brand: "New Holland", Model: "3630 TX Super Plus", Variant: "2WD", HP: 50, Image: "https://images.unsplash.com/photo-1592912388091-a20c74da05df?q=80&w=600&auto=format&fit=crop"},
		{ID: "solis_5015", Brand: "Solis", Model: "5015 E", Variant: "4WD", HP: 50, Image: "https://images.unsplash.com/photo-1625246333195-78d9c38ad449?q=80&w=600&auto=format&fit=crop"},
	}
}
