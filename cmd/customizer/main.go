package main

import (
	"context"
	"flag"

	"github.com/lintang-b-s/Accessx/pkg"
	"github.com/lintang-b-s/Accessx/pkg/costfunction"
	"github.com/lintang-b-s/Accessx/pkg/customizer"
	"github.com/lintang-b-s/Accessx/pkg/logger"
	"github.com/lintang-b-s/Accessx/pkg/openinghours"
	"github.com/lintang-b-s/Accessx/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	edgesFile   = flag.String("edges", "./data/edges.jsonl", "pedestrian network edge list, one JSON object per line")
	metricFile  = flag.String("out", "./data/metric.txt", "output metric file")
	profile     = flag.String("profile", "walk", "mobility profile: walk, wheelchair, powered")
	uphill      = flag.Float64("uphill", pkg.DEFAULT_MAX_UPHILL_GRADE, "max uphill grade")
	downhill    = flag.Float64("downhill", pkg.DEFAULT_MAX_DOWNHILL_GRADE, "max downhill grade")
	avoidCurbs  = flag.Bool("avoid_curbs", false, "avoid crossings without curb ramps")
	streetAvoid = flag.Float64("street_avoidance", pkg.DEFAULT_STREET_AVOIDANCE_WEIGHT, "street avoidance weight")
	timestamp   = flag.Int64("timestamp", 0, "reference time in unix epoch millis, 0 means now")
)

func main() {
	flag.Parse()
	err := util.ReadConfig()
	if err != nil {
		panic(err)
	}

	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	costOptions, err := costfunction.DefaultCostOptions().WithTimezone(viper.GetString("REFERENCE_TIMEZONE"))
	if err != nil {
		logger.Fatal("invalid reference timezone", zap.Error(err))
	}

	prefs := costfunction.DefaultPreferences(pkg.GetProfile(*profile))
	prefs.MaxUphillGrade = *uphill
	prefs.MaxDownhillGrade = *downhill
	prefs.AvoidCurbsWithoutRamps = *avoidCurbs
	prefs.StreetAvoidanceWeight = *streetAvoid
	if *timestamp != 0 {
		prefs = prefs.WithReferenceTime(*timestamp)
	}

	oracle := openinghours.NewCachedOracle(viper.GetInt("OPENING_HOURS_CACHE_SIZE"))
	c := customizer.NewCustomizer(*edgesFile, *metricFile, oracle, costOptions,
		viper.GetInt("WORKERS"), logger)
	if _, err := c.Customize(context.Background(), prefs); err != nil {
		logger.Fatal("customization failed", zap.Error(err))
	}
}
