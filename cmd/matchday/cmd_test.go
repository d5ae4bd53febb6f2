// ABOUTME: Tests for CLI commands
// ABOUTME: Tests command structure, flags, and subcommands

package main

import (
	"testing"
)

func TestRootCommand(t *testing.T) {
	if rootCmd.Use != "matchday" {
		t.Errorf("expected Use to be 'matchday', got %q", rootCmd.Use)
	}
	if rootCmd.Short == "" {
		t.Error("expected root command to have a short description")
	}
	for _, name := range []string{"config", "verbose", "json"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("expected --%s persistent flag to exist", name)
		}
	}
}

func TestArticlesCommand(t *testing.T) {
	if articlesCmd.Use != "articles [page]" {
		t.Errorf("expected Use to be 'articles [page]', got %q", articlesCmd.Use)
	}
	if len(articlesCmd.Aliases) == 0 {
		t.Error("expected articles command to have aliases")
	}
	for _, name := range []string{"limit", "since", "full"} {
		if articlesCmd.Flags().Lookup(name) == nil {
			t.Errorf("expected --%s flag to exist", name)
		}
	}
}

func TestEventsCommand(t *testing.T) {
	if eventsCmd.Use != "events [page]" {
		t.Errorf("expected Use to be 'events [page]', got %q", eventsCmd.Use)
	}
	for _, name := range []string{"limit", "sport"} {
		if eventsCmd.Flags().Lookup(name) == nil {
			t.Errorf("expected --%s flag to exist", name)
		}
	}
}

func TestReadCommand(t *testing.T) {
	if readCmd.Use != "read <article-id>" {
		t.Errorf("expected Use to be 'read <article-id>', got %q", readCmd.Use)
	}
	if readCmd.Flags().Lookup("page") == nil {
		t.Error("expected --page flag to exist")
	}
}

func TestServeCommand(t *testing.T) {
	if serveCmd.Use != "serve" {
		t.Errorf("expected Use to be 'serve', got %q", serveCmd.Use)
	}
	if serveCmd.Flags().Lookup("addr") == nil {
		t.Error("expected --addr flag to exist")
	}
}

func TestSubcommandsRegistered(t *testing.T) {
	want := map[string]bool{
		"articles": false, "events": false, "read": false, "sources": false,
		"serve": false, "mcp": false, "setup": false, "version": false,
	}
	for _, c := range rootCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("expected %s command to be registered", name)
		}
	}
}

func TestVersionVariables(t *testing.T) {
	if Version == "" {
		t.Error("expected Version to be set")
	}
	if Commit == "" {
		t.Error("expected Commit to be set")
	}
	if BuildDate == "" {
		t.Error("expected BuildDate to be set")
	}
}
