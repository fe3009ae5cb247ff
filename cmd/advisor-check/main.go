// advisor-check exercises a running cover crop advisor server end to end:
// health, options, a recommendation round-trip, and replay.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"os"
	"strings"
	"time"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorCyan   = "\033[36m"
)

type CheckClient struct {
	baseURL string
	client  *http.Client
}

func NewCheckClient(baseURL string) *CheckClient {
	jar, _ := cookiejar.New(nil)
	return &CheckClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 60 * time.Second,
			Jar:     jar,
		},
	}
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the advisor")
	checkType := flag.String("check", "all", "Check type: all, health, options, recommend, replay")
	goals := flag.String("goals", "Soil builder", "Comma-separated goals for the recommend check")
	crops := flag.String("crops", "Corn", "Comma-separated cash crops for the recommend check")
	flag.Parse()

	client := NewCheckClient(*baseURL)

	printHeader("Cover Crop Advisor - Smoke Checks")
	fmt.Printf("%sBase URL: %s%s\n\n", colorCyan, *baseURL, colorReset)

	switch *checkType {
	case "all":
		client.runAllChecks(*goals, *crops)
	case "health":
		client.checkHealth()
	case "options":
		client.checkOptions()
	case "recommend":
		client.checkRecommend(*goals, *crops)
	case "replay":
		client.checkReplay()
	default:
		printError(fmt.Sprintf("Unknown check type: %s", *checkType))
		fmt.Println("\nAvailable checks: all, health, options, recommend, replay")
		os.Exit(1)
	}
}

func (cc *CheckClient) runAllChecks(goals, crops string) {
	checks := []struct {
		name string
		fn   func() bool
	}{
		{"Health", cc.checkHealth},
		{"Options", cc.checkOptions},
		{"Recommend", func() bool { return cc.checkRecommend(goals, crops) }},
		{"Replay", cc.checkReplay},
	}

	passed := 0
	failed := 0

	for _, check := range checks {
		if check.fn() {
			passed++
		} else {
			failed++
		}
		fmt.Println()
	}

	printHeader("Check Summary")
	fmt.Printf("%sPassed: %d%s\n", colorGreen, passed, colorReset)
	fmt.Printf("%sFailed: %d%s\n", colorRed, failed, colorReset)
	fmt.Printf("Total: %d\n", passed+failed)

	if failed > 0 {
		os.Exit(1)
	}
}

func (cc *CheckClient) checkHealth() bool {
	printCheckHeader("Health Endpoint")

	url := fmt.Sprintf("%s/health", cc.baseURL)
	fmt.Printf("GET %s\n", url)

	resp, err := cc.client.Get(url)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", resp.StatusCode))
		return false
	}
	if string(body) != "OK" {
		printError(fmt.Sprintf("Expected body 'OK', got '%s'", string(body)))
		return false
	}

	printSuccess("Health check passed")
	return true
}

func (cc *CheckClient) checkOptions() bool {
	printCheckHeader("Options Endpoint")

	url := fmt.Sprintf("%s/api/options", cc.baseURL)
	fmt.Printf("GET %s\n", url)

	resp, err := cc.client.Get(url)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", resp.StatusCode))
		return false
	}

	var options struct {
		Goals     []string `json:"goals"`
		CashCrops []string `json:"cash_crops"`
	}
	if err := json.Unmarshal(body, &options); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}
	if len(options.Goals) != 10 {
		printError(fmt.Sprintf("Expected 10 goals, got %d", len(options.Goals)))
		return false
	}
	if len(options.CashCrops) == 0 {
		printError("No cash crop options returned")
		return false
	}

	printSuccess(fmt.Sprintf("Options look sane (%d goals, %d cash crops)", len(options.Goals), len(options.CashCrops)))
	return true
}

func (cc *CheckClient) checkRecommend(goals, crops string) bool {
	printCheckHeader("Recommendation Round-Trip")

	url := fmt.Sprintf("%s/api/recommend", cc.baseURL)
	fmt.Printf("POST %s\n", url)

	request := map[string]interface{}{
		"goals": splitList(goals),
		"crops": splitList(crops),
	}
	jsonData, _ := json.MarshalIndent(request, "", "  ")
	fmt.Printf("%sRequest:%s\n%s\n\n", colorYellow, colorReset, string(jsonData))

	resp, err := cc.client.Post(url, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", resp.StatusCode))
		fmt.Printf("Response: %s\n", string(body))
		return false
	}

	var result struct {
		Match          bool   `json:"match"`
		Message        string `json:"message"`
		Recommendation string `json:"recommendation"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}

	if !result.Match {
		printError(fmt.Sprintf("No match: %s (try different -goals/-crops)", result.Message))
		return false
	}
	if result.Recommendation == "" {
		printError("Match found but no recommendation text returned")
		return false
	}

	printSuccess(result.Message)
	fmt.Printf("\n%sRecommendation:%s\n%s\n%s\n%s\n", colorGreen, colorReset,
		strings.Repeat("=", 80), result.Recommendation, strings.Repeat("=", 80))
	return true
}

func (cc *CheckClient) checkReplay() bool {
	printCheckHeader("Replay Endpoint")

	url := fmt.Sprintf("%s/api/recommendation", cc.baseURL)
	fmt.Printf("GET %s\n", url)

	resp, err := cc.client.Get(url)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d (run the recommend check first)", resp.StatusCode))
		return false
	}

	var replay struct {
		Recommendation string `json:"recommendation"`
	}
	if err := json.Unmarshal(body, &replay); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}
	if replay.Recommendation == "" {
		printError("Replay returned empty recommendation text")
		return false
	}

	printSuccess("Replay returned the stored recommendation")
	return true
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func printHeader(text string) {
	fmt.Printf("\n%s%s%s\n", colorBlue, strings.Repeat("=", len(text)+4), colorReset)
	fmt.Printf("%s= %s =%s\n", colorBlue, text, colorReset)
	fmt.Printf("%s%s%s\n\n", colorBlue, strings.Repeat("=", len(text)+4), colorReset)
}

func printCheckHeader(text string) {
	fmt.Printf("%s[CHECK] %s%s\n", colorCyan, text, colorReset)
	fmt.Println(strings.Repeat("-", 80))
}

func printSuccess(text string) {
	fmt.Printf("%s✓ %s%s\n", colorGreen, text, colorReset)
}

func printError(text string) {
	fmt.Printf("%s✗ %s%s\n", colorRed, text, colorReset)
}
