package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/JaimeStill/syllabus/internal/config"
	"github.com/JaimeStill/syllabus/internal/infrastructure"
	"github.com/JaimeStill/syllabus/internal/state"
	"github.com/JaimeStill/syllabus/internal/workflow"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

const usage = "usage: syllabus <pdf-path> <total-hours>"

var phaseMessages = map[state.Phase]string{
	state.PhaseExtract:    "extracting textbook content",
	state.PhaseObjectives: "generating teaching objectives",
	state.PhaseKnowledge:  "analyzing knowledge points",
	state.PhaseActivities: "designing teaching activities",
	state.PhaseAssessment: "designing assessment",
	state.PhaseFormat:     "formatting lesson plan",
	state.PhaseDone:       "saving lesson plan",
}

// parseArgs returns the PDF path and class-hour total from the command line.
func parseArgs(args []string) (string, int, error) {
	if len(args) != 2 {
		return "", 0, errors.New(usage)
	}

	hours, err := strconv.Atoi(args[1])
	if err != nil || hours <= 0 {
		return "", 0, fmt.Errorf("total-hours must be a positive integer, got %q", args[1])
	}

	return args[0], hours, nil
}

func run(args []string, stdout, stderr io.Writer) int {
	path, hours, err := parseArgs(args)
	if err != nil {
		fmt.Fprintln(stderr, err)
		if err.Error() != usage {
			fmt.Fprintln(stderr, usage)
		}
		return exitUsage
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(stderr, "error: load .env: %v\n", err)
		return exitFailure
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitFailure
	}

	infra, err := infrastructure.NewWithLog(cfg, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitFailure
	}

	infra.Logger.Info(
		"syllabus starting",
		"version", cfg.Version,
		"env", cfg.Env(),
		"pdf", path,
		"total_hours", hours,
	)

	if err := infra.Start(); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitFailure
	}
	infra.Lifecycle.WaitForStartup()

	defer func() {
		if err := infra.Lifecycle.Shutdown(cfg.ShutdownTimeoutDuration()); err != nil {
			infra.Logger.Error("shutdown failed", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(infra.Lifecycle.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithTimeout(ctx, cfg.RunTimeoutDuration())
	defer cancel()

	rt := infra.Runtime(func(phase state.Phase) {
		if msg, ok := phaseMessages[phase]; ok {
			fmt.Fprintf(stdout, "[%s] %s...\n", phase, msg)
		}
	})

	result := workflow.Execute(ctx, rt, path, hours)
	if err := result.Err(); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitFailure
	}

	fmt.Fprintf(stdout, "lesson plan saved: %s\n", result.Path)
	return exitOK
}
