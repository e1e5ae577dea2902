package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/sternensim/StarNavigation/internal/catalog"
	"github.com/sternensim/StarNavigation/internal/ephemeris"
	"github.com/sternensim/StarNavigation/internal/geo"
	"github.com/sternensim/StarNavigation/internal/sky"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	at := flag.String("at", "52.52,13.405", "observer position as lat,lon[,alt]")
	to := flag.String("to", "", "optional destination; prints bearing and distance")
	when := flag.String("time", "", "observation time, RFC 3339 (default now)")
	file := flag.String("catalog", os.Getenv("STARNAV_CATALOG_FILE"), "catalog CSV overriding built-in stars")
	planetsOnly := flag.Bool("planets-only", false, "list only planets, Sun and Moon")
	flag.Parse()

	observer, err := geo.ParsePosition(*at)
	if err != nil {
		fmt.Println("ERROR observer:", err)
		os.Exit(1)
	}

	t := time.Now().UTC()
	if *when != "" {
		if t, err = time.Parse(time.RFC3339, *when); err != nil {
			fmt.Println("ERROR time:", err)
			os.Exit(1)
		}
	}

	ds, err := catalog.LoadFile(*file, logger)
	if err != nil {
		fmt.Println("ERROR loading catalog:", err)
		os.Exit(1)
	}
	store := catalog.NewStore()
	store.Set(ds)
	fmt.Printf("Catalog %s: %d objects (loaded %.1fs ago)\n", ds.Source, len(ds.Objects), store.AgeSeconds())

	filter := sky.NewFilter(catalog.Merge(store, ephemeris.NewProvider(logger)), sky.Config{}, logger)
	vis, err := filter.Visible(context.Background(), observer, t, sky.Query{PlanetsOnly: *planetsOnly})
	if err != nil {
		fmt.Println("ERROR querying sky:", err)
		os.Exit(1)
	}

	sort.Slice(vis.Sightings, func(i, j int) bool {
		return vis.Sightings[i].Altitude > vis.Sightings[j].Altitude
	})

	fmt.Printf("Sky at %s, %s: %d visible\n", observer, t.Format(time.RFC3339), len(vis.Sightings))
	for _, s := range vis.Sightings {
		fmt.Printf("  %-16s %-6s mag %5.2f  az %6.2f° (%-2s)  alt %5.2f°\n",
			s.Object.Name, s.Object.Type, s.Object.Magnitude, s.Azimuth, geo.Cardinal(s.Azimuth), s.Altitude)
	}

	if *to != "" {
		dest, err := geo.ParsePosition(*to)
		if err != nil {
			fmt.Println("ERROR destination:", err)
			os.Exit(1)
		}
		brg := geo.Bearing(observer, dest)
		fmt.Printf("\nTo %s: %.1f km, bearing %.2f° (%s)\n", dest, geo.Distance(observer, dest), brg, geo.Cardinal(brg))
	}
}
