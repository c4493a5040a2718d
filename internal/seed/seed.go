package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/snowflake"
	activitydomain "github.com/orgcatalog/catalog/internal/activity/domain"
	buildingdomain "github.com/orgcatalog/catalog/internal/building/domain"
	organizationdomain "github.com/orgcatalog/catalog/internal/organization/domain"
	"gorm.io/gorm"
)

// EnsureSampleData seeds a small deterministic dataset so a fresh install
// has something to browse. It is a no-op when any activity already exists.
func EnsureSampleData(db *gorm.DB, node *snowflake.Node) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}
	if node == nil {
		return errors.New("seed id generator is required")
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&activitydomain.Activity{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		buildings, err := seedBuildings(tx, node)
		if err != nil {
			return err
		}

		activities, err := seedActivities(tx, node)
		if err != nil {
			return err
		}

		return seedOrganizations(tx, node, buildings, activities)
	})
}

func seedBuildings(tx *gorm.DB, node *snowflake.Node) ([]buildingdomain.Building, error) {
	data := []struct {
		address  string
		lat, lon float64
	}{
		{"г. Москва, ул. Ленина 1, офис 3", 55.7558, 37.6173},
		{"г. Москва, ул. Блюхера 32/1", 55.7600, 37.6200},
		{"г. Москва, ул. Тверская 15", 55.7500, 37.6100},
		{"г. Москва, ул. Арбат 25", 55.7495, 37.6060},
		{"г. Москва, пр. Мира 10", 55.7800, 37.6300},
		{"г. Санкт-Петербург, Невский пр. 50", 59.9343, 30.3351},
		{"г. Санкт-Петербург, ул. Садовая 15", 59.9260, 30.3170},
		{"г. Екатеринбург, ул. Ленина 25", 56.8380, 60.5970},
		{"г. Екатеринбург, пр. Космонавтов 10", 56.8500, 60.6100},
	}

	buildings := make([]buildingdomain.Building, 0, len(data))
	for _, d := range data {
		buildings = append(buildings, buildingdomain.Building{
			ID:        node.Generate().Int64(),
			Address:   d.address,
			Latitude:  d.lat,
			Longitude: d.lon,
		})
	}
	if err := tx.Create(&buildings).Error; err != nil {
		return nil, fmt.Errorf("seed buildings: %w", err)
	}
	return buildings, nil
}

// seedActivities plants a three level taxonomy keyed by name so the
// organization seeding below can link by readable labels.
func seedActivities(tx *gorm.DB, node *snowflake.Node) (map[string]int64, error) {
	type entry struct {
		name   string
		parent string
	}

	entries := []entry{
		{"Еда", ""},
		{"Автомобили", ""},
		{"Электроника", ""},
		{"Одежда", ""},
		{"Услуги", ""},

		{"Мясная продукция", "Еда"},
		{"Молочная продукция", "Еда"},
		{"Хлебобулочные изделия", "Еда"},
		{"Напитки", "Еда"},

		{"Говядина", "Мясная продукция"},
		{"Свинина", "Мясная продукция"},
		{"Курица", "Мясная продукция"},
		{"Сыры", "Молочная продукция"},
		{"Молоко", "Молочная продукция"},
		{"Йогурты", "Молочная продукция"},

		{"Грузовые", "Автомобили"},
		{"Легковые", "Автомобили"},
		{"Запчасти", "Автомобили"},
		{"Аксессуары", "Автомобили"},

		{"Шины", "Запчасти"},
		{"Тормозные системы", "Запчасти"},
		{"Двигатель", "Запчасти"},

		{"Компьютеры", "Электроника"},
		{"Смартфоны", "Электроника"},
		{"Бытовая техника", "Электроника"},

		{"Мужская одежда", "Одежда"},
		{"Женская одежда", "Одежда"},
		{"Детская одежда", "Одежда"},

		{"Юридические услуги", "Услуги"},
		{"Консалтинг", "Услуги"},
		{"Образование", "Услуги"},
	}

	ids := make(map[string]int64, len(entries))
	for _, e := range entries {
		activity := activitydomain.Activity{
			ID:   node.Generate().Int64(),
			Name: e.name,
		}
		if e.parent != "" {
			parentID, ok := ids[e.parent]
			if !ok {
				return nil, fmt.Errorf("seed activities: unknown parent %q", e.parent)
			}
			activity.ParentID = &parentID
		}
		if err := tx.Create(&activity).Error; err != nil {
			return nil, fmt.Errorf("seed activities: %w", err)
		}
		ids[e.name] = activity.ID
	}
	return ids, nil
}

func seedOrganizations(tx *gorm.DB, node *snowflake.Node, buildings []buildingdomain.Building, activities map[string]int64) error {
	data := []struct {
		name       string
		building   int
		phones     []string
		activities []string
	}{
		{`ООО "Рога и Копыта"`, 0, []string{"2-222-222", "3-333-333"}, []string{"Мясная продукция", "Молочная продукция", "Говядина", "Свинина"}},
		{`ЗАО "Молочные реки"`, 1, []string{"8-923-666-13-13"}, []string{"Молочная продукция", "Сыры", "Молоко", "Йогурты"}},
		{`ИП "Свежий хлеб"`, 2, []string{"495-11-22"}, []string{"Хлебобулочные изделия"}},
		{`ОАО "Мясной Двор"`, 3, []string{"8-495-111-22-33", "8-495-111-22-34", "8-495-111-22-35"}, []string{"Мясная продукция", "Курица", "Говядина"}},
		{`ИП "АвтоМир"`, 4, []string{"+7-903-555-66-77", "495-77-88"}, []string{"Легковые", "Запчасти", "Аксессуары"}},
		{`ООО "ГрузовикСервис"`, 5, []string{"8-812-333-44-55"}, []string{"Грузовые", "Запчасти", "Шины", "Тормозные системы"}},
		{`ЗАО "АвтоДеталь"`, 6, []string{"8-812-999-88-77", "312-45-67"}, []string{"Запчасти", "Двигатель", "Тормозные системы"}},
		{`ООО "ТехноМир"`, 7, []string{"8-343-222-33-44", "343-55-66", "+7-912-345-67-89"}, []string{"Электроника", "Компьютеры", "Смартфоны"}},
		{`ИП "БытоваяТехника"`, 8, []string{"8-343-777-88-99"}, []string{"Бытовая техника"}},
		{`ООО "Правовед"`, 0, []string{"495-33-44", "8-495-222-11-00"}, []string{"Юридические услуги", "Консалтинг"}},
		{`ИП "БизнесКонсалт"`, 1, []string{"8-495-444-55-66"}, []string{"Консалтинг"}},
	}

	for _, d := range data {
		org := organizationdomain.Organization{
			ID:         node.Generate().Int64(),
			Name:       d.name,
			BuildingID: buildings[d.building].ID,
		}
		if err := tx.Omit("Building", "PhoneNumbers", "Activities").Create(&org).Error; err != nil {
			return fmt.Errorf("seed organizations: %w", err)
		}

		for _, number := range d.phones {
			phone := organizationdomain.PhoneNumber{
				ID:             node.Generate().Int64(),
				Number:         number,
				OrganizationID: org.ID,
			}
			if err := tx.Create(&phone).Error; err != nil {
				return fmt.Errorf("seed phone numbers: %w", err)
			}
		}

		for _, name := range d.activities {
			activityID, ok := activities[name]
			if !ok {
				return fmt.Errorf("seed organizations: unknown activity %q", name)
			}
			err := tx.Exec(
				"INSERT INTO organization_activities (organization_id, activity_id) VALUES (?, ?)",
				org.ID, activityID,
			).Error
			if err != nil {
				return fmt.Errorf("seed organization activities: %w", err)
			}
		}
	}
	return nil
}
