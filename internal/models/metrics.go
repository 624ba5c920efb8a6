package models

import "time"

// CropMetric is one growth/telemetry sample for a crop.
type CropMetric struct {
	ID                 int       `json:"id" db:"id"`
	CropID             string    `json:"crop_id" db:"crop_id"`
	RecordedAt         time.Time `json:"recorded_at" db:"recorded_at"`
	HeightCm           *float64  `json:"height_cm" db:"height_cm"`
	LeafCount          *int      `json:"leaf_count" db:"leaf_count"`
	StemDiameterMm     *float64  `json:"stem_diameter_mm" db:"stem_diameter_mm"`
	LeafAreaCm2        *float64  `json:"leaf_area_cm2" db:"leaf_area_cm2"`
	BiomassG           *float64  `json:"biomass_g" db:"biomass_g"`
	HealthScore        *float64  `json:"health_score" db:"health_score"`
	DiseaseDetected    bool      `json:"disease_detected" db:"disease_detected"`
	PestDetected       bool      `json:"pest_detected" db:"pest_detected"`
	StressLevel        *float64  `json:"stress_level" db:"stress_level"`
	TemperatureC       *float64  `json:"temperature_c" db:"temperature_c"`
	HumidityPercent    *float64  `json:"humidity_percent" db:"humidity_percent"`
	LightIntensityUmol *float64  `json:"light_intensity_umol" db:"light_intensity_umol"`
	PhLevel            *float64  `json:"ph_level" db:"ph_level"`
	EcLevel            *float64  `json:"ec_level" db:"ec_level"`
	NitrogenPpm        *float64  `json:"nitrogen_ppm" db:"nitrogen_ppm"`
	PhosphorusPpm      *float64  `json:"phosphorus_ppm" db:"phosphorus_ppm"`
	PotassiumPpm       *float64  `json:"potassium_ppm" db:"potassium_ppm"`
	CalciumPpm         *float64  `json:"calcium_ppm" db:"calcium_ppm"`
	MagnesiumPpm       *float64  `json:"magnesium_ppm" db:"magnesium_ppm"`
}

// InventoryMetric is one daily utilization/climate sample for a container.
type InventoryMetric struct {
	ID                         int       `json:"id" db:"id"`
	ContainerID                string    `json:"container_id" db:"container_id"`
	Date                       time.Time `json:"date" db:"date"`
	NurseryStationUtilization  *int      `json:"nursery_station_utilization" db:"nursery_station_utilization"`
	CultivationAreaUtilization *int      `json:"cultivation_area_utilization" db:"cultivation_area_utilization"`
	AirTemperature             *float64  `json:"air_temperature" db:"air_temperature"`
	Humidity                   *int      `json:"humidity" db:"humidity"`
	CO2Level                   *int      `json:"co2_level" db:"co2_level"`
	YieldKg                    *float64  `json:"yield_kg" db:"yield_kg"`
}

// CropStatistic is a per-seed-type harvest summary for a container over a
// reporting period.
type CropStatistic struct {
	ID               int       `json:"id" db:"id"`
	ContainerID      string    `json:"container_id" db:"container_id"`
	SeedType         string    `json:"seed_type" db:"seed_type"`
	PeriodStart      time.Time `json:"period_start" db:"period_start"`
	PeriodEnd        time.Time `json:"period_end" db:"period_end"`
	HarvestedCount   *int      `json:"harvested_count" db:"harvested_count"`
	TotalHarvestedKg *float64  `json:"total_harvested_kg" db:"total_harvested_kg"`
	SuccessRate      *float64  `json:"success_rate" db:"success_rate"`
}
