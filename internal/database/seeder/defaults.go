package seeder

func Defaults() []Seeder {
	return []Seeder{
		OccupationsSeeder{Items: DemoOccupations()},
		DemoStudentSeeder{},
	}
}
