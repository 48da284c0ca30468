package main

import (
	"database/sql"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	kongdotenv "github.com/titusjaka/kong-dotenv-go"
	_ "modernc.org/sqlite"

	"github.com/renewgrid/renewperf/internal/ingest"
	"github.com/renewgrid/renewperf/internal/models"
	"github.com/renewgrid/renewperf/internal/rawfile"
	"github.com/renewgrid/renewperf/internal/store"
	"github.com/renewgrid/renewperf/internal/synth"
	"github.com/renewgrid/renewperf/internal/timegrid"
)

type rangeFlags struct {
	Start string `help:"Start date (YYYY-MM-DD)." default:"2023-01-01" env:"MOCK_START_DATE"`
	End   string `help:"End date (YYYY-MM-DD), inclusive." default:"2023-12-31" env:"MOCK_END_DATE"`
	Seed  int64  `help:"Random seed for reproducible output." default:"42" env:"MOCK_RANDOM_SEED"`
}

type outputFlags struct {
	DataDir    string `help:"Root directory for raw Parquet data." default:"data/raw" env:"DATA_RAW"`
	SingleFile bool   `help:"Write one file per dataset instead of daily partitions."`
}

func (r rangeFlags) dates() (time.Time, time.Time, error) {
	start, err := timegrid.ParseDate(r.Start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := timegrid.ParseDate(r.End)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

func weatherDir(dataDir string) string    { return filepath.Join(dataDir, "weather") }
func generationDir(dataDir string) string { return filepath.Join(dataDir, "generation") }

type WeatherCmd struct {
	rangeFlags
	outputFlags
	Assets int `help:"Number of auto-named assets (1-100)." default:"10" env:"MOCK_ASSET_COUNT"`
}

func (c *WeatherCmd) Run() error {
	start, end, err := c.dates()
	if err != nil {
		return err
	}

	rows, err := synth.GenerateWeather(start, end, c.Assets, c.Seed)
	if err != nil {
		return err
	}
	log.Printf("weather: generated %d rows for %d assets (%s to %s)", len(rows), c.Assets, c.Start, c.End)

	if err := rawfile.SaveWeather(rows, weatherDir(c.DataDir), !c.SingleFile); err != nil {
		return err
	}
	log.Printf("weather: saved to %s", weatherDir(c.DataDir))
	return nil
}

type GenerationCmd struct {
	rangeFlags
	outputFlags
	Uncorrelated bool `help:"Ignore previously written weather partitions and synthesize drivers inline."`
}

func (c *GenerationCmd) Run() error {
	start, end, err := c.dates()
	if err != nil {
		return err
	}

	var weather []models.WeatherRecord
	if !c.Uncorrelated {
		weather, err = loadWeatherPartitions(weatherDir(c.DataDir))
		if err != nil {
			return err
		}
	}
	if weather != nil {
		log.Printf("generation: correlating against %d weather rows", len(weather))
	} else {
		log.Printf("generation: no weather data found, synthesizing drivers inline")
	}

	rows, err := synth.GenerateGeneration(start, end, models.DefaultAssets(), weather, c.Seed)
	if err != nil {
		return err
	}
	log.Printf("generation: generated %d rows (%s to %s)", len(rows), c.Start, c.End)

	if err := rawfile.SaveGeneration(rows, generationDir(c.DataDir), !c.SingleFile); err != nil {
		return err
	}
	log.Printf("generation: saved to %s", generationDir(c.DataDir))
	return nil
}

type IngestCmd struct {
	DataDir string `help:"Root directory for raw Parquet data." default:"data/raw" env:"DATA_RAW"`
	DB      string `help:"Path to the SQLite warehouse." default:"data/warehouse.db" env:"WAREHOUSE_PATH"`
}

func (c *IngestCmd) Run() error {
	st, closeDB, err := openStore(c.DB)
	if err != nil {
		return err
	}
	defer closeDB()

	loader := ingest.NewLoader(st)

	weatherRows, err := loader.IngestWeatherDir(weatherDir(c.DataDir))
	if err != nil {
		return err
	}
	generationRows, err := loader.IngestGenerationDir(generationDir(c.DataDir))
	if err != nil {
		return err
	}
	log.Printf("ingest: merged %d weather rows, %d generation rows", weatherRows, generationRows)

	summaries, err := loader.RefreshDailySummaries()
	if err != nil {
		return err
	}
	log.Printf("ingest: refreshed %d daily asset summaries", summaries)
	return nil
}

type AllCmd struct {
	rangeFlags
	outputFlags
	DB string `help:"Path to the SQLite warehouse." default:"data/warehouse.db" env:"WAREHOUSE_PATH"`
}

// Run generates weather, drives generation off the same table in memory,
// writes both datasets, and merges them into the warehouse.
func (c *AllCmd) Run() error {
	start, end, err := c.dates()
	if err != nil {
		return err
	}

	assets := models.DefaultAssets()

	weather, err := synth.GenerateWeather(start, end, len(assets), c.Seed)
	if err != nil {
		return err
	}
	generation, err := synth.GenerateGeneration(start, end, assets, weather, c.Seed)
	if err != nil {
		return err
	}
	log.Printf("all: generated %d weather rows, %d generation rows", len(weather), len(generation))

	if err := rawfile.SaveWeather(weather, weatherDir(c.DataDir), !c.SingleFile); err != nil {
		return err
	}
	if err := rawfile.SaveGeneration(generation, generationDir(c.DataDir), !c.SingleFile); err != nil {
		return err
	}

	st, closeDB, err := openStore(c.DB)
	if err != nil {
		return err
	}
	defer closeDB()

	if err := st.UpsertAssets(assets); err != nil {
		return err
	}

	loader := ingest.NewLoader(st)
	if _, err := loader.IngestWeatherDir(weatherDir(c.DataDir)); err != nil {
		return err
	}
	if _, err := loader.IngestGenerationDir(generationDir(c.DataDir)); err != nil {
		return err
	}
	summaries, err := loader.RefreshDailySummaries()
	if err != nil {
		return err
	}
	log.Printf("all: warehouse loaded, %d daily asset summaries", summaries)
	return nil
}

// loadWeatherPartitions reads every weather partition under dir, or returns
// nil when none exist so generation falls back to inline drivers.
func loadWeatherPartitions(dir string) ([]models.WeatherRecord, error) {
	files, err := rawfile.ListPartitions(dir, rawfile.WeatherPrefix)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}

	var rows []models.WeatherRecord
	for _, path := range files {
		partition, err := rawfile.ReadWeatherFile(path)
		if err != nil {
			return nil, err
		}
		rows = append(rows, partition...)
	}
	return rows, nil
}

func openStore(path string) (*store.Store, func(), error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, nil, fmt.Errorf("open database %s: %w", path, err)
	}

	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")

	st := store.New(db)
	if err := st.Migrate(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}
	return st, func() { db.Close() }, nil
}

func main() {
	var cli struct {
		Weather    WeatherCmd    `cmd:"" help:"Generate synthetic hourly weather data and write Parquet partitions."`
		Generation GenerationCmd `cmd:"" help:"Generate synthetic generation data, correlated with weather when available."`
		Ingest     IngestCmd     `cmd:"" help:"Merge raw Parquet partitions into the SQLite warehouse."`
		All        AllCmd        `cmd:"" help:"Generate weather and generation, write Parquet, and load the warehouse."`
	}

	ctx := kong.Parse(&cli,
		kong.Name("renewperf"),
		kong.Description("Synthetic renewable-energy telemetry pipeline."),
		kong.Configuration(kongdotenv.ENVFileReader, ".env"),
	)
	ctx.FatalIfErrorf(ctx.Run())
}
