// Command simulate replays a full day through the resolver and status engine
// and prints every display-mode transition. Useful for eyeballing a schedule
// change before it reaches a classroom.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/apaulliao/classboard-api/internal/models"
	"github.com/apaulliao/classboard-api/internal/service"
)

type scheduleFile struct {
	Slots    []models.TimeSlot     `json:"slots"`
	DayTypes map[string]string     `json:"day_types"`
	Flags    *models.OverrideFlags `json:"flags,omitempty"`
}

func main() {
	var (
		schedulePath string
		date         string
		step         time.Duration
	)

	flag.StringVar(&schedulePath, "schedule", "schedule.json", "Path to JSON schedule file")
	flag.StringVar(&date, "date", time.Now().Format("2006-01-02"), "Date to simulate (YYYY-MM-DD)")
	flag.DurationVar(&step, "step", time.Second, "Simulation step")
	flag.Parse()

	day, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		log.Fatalf("invalid date: %v", err)
	}

	sched, err := loadSchedule(schedulePath)
	if err != nil {
		log.Fatalf("failed to load schedule: %v", err)
	}

	dayTypes := models.DayTypeMap{}
	for weekday, dayType := range sched.DayTypes {
		var wd int
		if _, err := fmt.Sscanf(weekday, "%d", &wd); err != nil {
			log.Fatalf("invalid weekday key %q", weekday)
		}
		dayTypes[time.Weekday(wd)] = models.DayType(dayType)
	}

	var flags models.OverrideFlags
	if sched.Flags != nil {
		flags = *sched.Flags
	}

	resolver := service.NewResolverService(service.ResolverConfig{}, nil)
	engine := service.NewStatusEngine(service.EngineConfig{})

	weekday := day.Weekday()
	effective := resolver.Resolve(weekday, sched.Slots, dayTypes.ForWeekday(weekday))

	fmt.Printf("%s (%s): %d effective slots\n", date, weekday, len(effective))
	for _, slot := range effective {
		fmt.Printf("  %-12s %s-%s %s\n", slot.ID, slot.Start, slot.End, slot.Kind)
	}
	fmt.Println()

	var lastMode models.DisplayMode
	transitions := 0
	for at := day; at.Before(day.Add(24 * time.Hour)); at = at.Add(step) {
		snap := engine.Evaluate(at, effective, flags)
		if snap.Mode == lastMode {
			continue
		}
		slotID := "-"
		if snap.CurrentSlot != nil {
			slotID = snap.CurrentSlot.ID
		}
		fmt.Printf("%s  %-10s slot=%-12s remaining=%ds\n", at.Format("15:04:05"), snap.Mode, slotID, snap.SecondsRemaining)
		lastMode = snap.Mode
		transitions++
	}
	fmt.Printf("\n%d transitions\n", transitions)
}

func loadSchedule(path string) (*scheduleFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sched := &scheduleFile{}
	if err := json.Unmarshal(raw, sched); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return sched, nil
}
