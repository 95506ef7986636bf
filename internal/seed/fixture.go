package seed

// Default returns the built-in fixture: twelve two-wheel spots (M1-M12), six
// four-wheel spots (C1-C6), the resident directory and the guard roster. M12
// starts out of service with a faulted sensor; M7 is allocatable but its
// sensor needs attention.
func Default() Fixture {
	f := Fixture{
		Spots: []SpotSeed{
			{ID: "1", Label: "M1", Class: "two_wheel"},
			{ID: "2", Label: "M2", Class: "two_wheel"},
			{ID: "3", Label: "M3", Class: "two_wheel"},
			{ID: "4", Label: "M4", Class: "two_wheel"},
			{ID: "5", Label: "M5", Class: "two_wheel"},
			{ID: "6", Label: "M6", Class: "two_wheel"},
			{ID: "7", Label: "M7", Class: "two_wheel", SensorStatus: "faulted"},
			{ID: "8", Label: "M8", Class: "two_wheel"},
			{ID: "9", Label: "M9", Class: "two_wheel"},
			{ID: "10", Label: "M10", Class: "two_wheel"},
			{ID: "11", Label: "M11", Class: "two_wheel"},
			{ID: "12", Label: "M12", Class: "two_wheel", Status: "out_of_service", SensorStatus: "faulted"},
			{ID: "13", Label: "C1", Class: "four_wheel"},
			{ID: "14", Label: "C2", Class: "four_wheel"},
			{ID: "15", Label: "C3", Class: "four_wheel"},
			{ID: "16", Label: "C4", Class: "four_wheel"},
			{ID: "17", Label: "C5", Class: "four_wheel"},
			{ID: "18", Label: "C6", Class: "four_wheel"},
		},
		Customers: []CustomerSeed{
			{
				ID: "c1", Name: "Ahmad Pratama", Email: "ahmad.pratama@email.com",
				Phone: "081234567890", RoomID: "A-101", MoveInDate: "2025-01-15",
				Gender: "male", Occupation: "student",
				Vehicles: []VehicleSeed{{Plate: "B 1234 XYZ", Class: "two_wheel", Brand: "Honda Beat", Color: "Merah"}},
			},
			{
				ID: "c2", Name: "Siti Nurhaliza", Email: "siti.nur@email.com",
				Phone: "081298765432", RoomID: "A-102", MoveInDate: "2025-02-01",
				Gender: "female", Occupation: "employee",
				Vehicles: []VehicleSeed{{Plate: "B 5678 ABC", Class: "two_wheel", Brand: "Yamaha Mio", Color: "Putih"}},
			},
			{
				ID: "c3", Name: "Budi Santoso", Email: "budi.santoso@email.com",
				Phone: "081345678901", RoomID: "B-201", MoveInDate: "2024-11-10",
				Gender: "male", Occupation: "entrepreneur",
				Vehicles: []VehicleSeed{{Plate: "B 9012 DEF", Class: "two_wheel", Brand: "Suzuki Nex", Color: "Hitam"}},
			},
			{
				ID: "c4", Name: "Dewi Lestari", Email: "dewi.lestari@email.com",
				Phone: "081456789012", RoomID: "B-203", MoveInDate: "2025-03-05",
				Gender: "female", Occupation: "student",
				Vehicles: []VehicleSeed{{Plate: "B 3456 GHI", Class: "two_wheel", Brand: "Honda Vario", Color: "Biru"}},
			},
			{
				ID: "c5", Name: "Eko Prasetyo", Email: "eko.prasetyo@email.com",
				Phone: "081567890123", RoomID: "C-301", MoveInDate: "2024-12-01",
				Gender: "male", Occupation: "programmer",
				Vehicles: []VehicleSeed{{Plate: "B 7890 JKL", Class: "four_wheel", Brand: "Toyota Avanza", Color: "Silver"}},
			},
			{
				ID: "c6", Name: "Fitri Handayani", Email: "fitri.h@email.com",
				Phone: "081678901234", RoomID: "C-302", MoveInDate: "2025-01-20",
				Gender: "female", Occupation: "designer",
				Vehicles: []VehicleSeed{{Plate: "B 2345 MNO", Class: "four_wheel", Brand: "Honda Jazz", Color: "Merah"}},
			},
		},
		Guards: []GuardSeed{
			{ID: "g1", Name: "Budi Hartono", Email: "budi.hartono@parkir.id", Phone: "081234567890", Shift: "morning", JoinDate: "2024-01-15"},
			{ID: "g2", Name: "Siti Rahayu", Email: "siti.rahayu@parkir.id", Phone: "081298765432", Shift: "day", JoinDate: "2024-03-20"},
			{ID: "g3", Name: "Ahmad Yani", Email: "ahmad.yani@parkir.id", Phone: "081345678901", Shift: "night", JoinDate: "2024-06-10"},
		},
	}
	return f
}
