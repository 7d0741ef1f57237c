package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"strings"
	"time"

	flag "github.com/spf13/pflag"
)

// User represents the structure of a user document to insert
type User struct {
	Name  string `json:"name"`
	Age   int    `json:"age"`
	Email string `json:"email"`
}

// generateRandomName generates a random 6-letter name
func generateRandomName(rng *rand.Rand) string {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	name := make([]byte, 6)
	for i := range name {
		name[i] = letters[rng.Intn(len(letters))]
	}
	// Capitalize first letter
	name[0] = name[0] - 32
	return string(name)
}

// insertUsers sends one POST inserting users as a single document array
func insertUsers(client *http.Client, url string, users []User) error {
	body, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("failed to marshal users: %w", err)
	}

	resp, err := client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return nil
}

func main() {
	fs := flag.NewFlagSet("protondb-load", flag.ExitOnError)
	numUsers := fs.IntP("users", "n", 1000, "Number of users to insert")
	batchSize := fs.IntP("batch", "b", 1, "Users per insert request")
	serverURL := fs.String("server", "http://127.0.0.1:9090", "ProtonDB server URL")
	database := fs.String("database", "load", "Target database (created if missing)")
	collection := fs.String("collection", "users", "Target collection")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: protondb-load [options]

Description:
  Insert random user documents into a running ProtonDB server and report
  throughput.

Options:
`)
		fs.PrintDefaults()
	}
	_ = fs.Parse(os.Args[1:])

	if *numUsers <= 0 || *batchSize <= 0 {
		fmt.Fprintln(os.Stderr, "Error: --users and --batch must be greater than 0")
		os.Exit(1)
	}

	client := &http.Client{Timeout: 30 * time.Second}

	// 409 means the database already exists, which is fine
	resp, err := client.Post(*serverURL+"/databases/"+*database, "application/json", nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot reach %s: %v\n", *serverURL, err)
		os.Exit(1)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusConflict {
		fmt.Fprintf(os.Stderr, "Error: creating database '%s' returned %d\n", *database, resp.StatusCode)
		os.Exit(1)
	}

	url := fmt.Sprintf("%s/databases/%s/collections/%s/documents", *serverURL, *database, *collection)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	fmt.Printf("Starting load test: inserting %d users to %s in batches of %d\n", *numUsers, url, *batchSize)

	startTime := time.Now()
	successCount := 0
	errorCount := 0
	reportInterval := max(1, *numUsers/10)
	nextReport := reportInterval

	for sent := 0; sent < *numUsers; {
		n := min(*batchSize, *numUsers-sent)
		users := make([]User, n)
		for i := range users {
			name := generateRandomName(rng)
			users[i] = User{
				Name:  name,
				Age:   rng.Intn(82) + 18,
				Email: fmt.Sprintf("%s@example.com", strings.ToLower(name)),
			}
		}

		if err := insertUsers(client, url, users); err != nil {
			errorCount += n
			fmt.Printf("Error inserting users %d-%d: %v\n", sent+1, sent+n, err)
		} else {
			successCount += n
		}
		sent += n

		if sent >= nextReport || sent == *numUsers {
			elapsed := time.Since(startTime)
			rate := float64(sent) / elapsed.Seconds()
			fmt.Printf("Progress: %d/%d users (%.1f%%) - Rate: %.1f users/sec - Success: %d, Errors: %d\n",
				sent, *numUsers, float64(sent)/float64(*numUsers)*100, rate, successCount, errorCount)
			nextReport += reportInterval
		}
	}

	totalTime := time.Since(startTime)

	fmt.Println("\n" + strings.Repeat("=", 60))
	fmt.Println("LOAD TEST COMPLETE")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Total users attempted: %d\n", *numUsers)
	fmt.Printf("Successful inserts:    %d\n", successCount)
	fmt.Printf("Failed inserts:        %d\n", errorCount)
	fmt.Printf("Success rate:          %.2f%%\n", float64(successCount)/float64(*numUsers)*100)
	fmt.Printf("Total time:            %v\n", totalTime)
	fmt.Printf("Average rate:          %.2f users/sec\n", float64(*numUsers)/totalTime.Seconds())

	if errorCount > 0 {
		fmt.Printf("\nWarning: %d errors occurred during the load test\n", errorCount)
		os.Exit(1)
	}

	fmt.Println("\nLoad test completed successfully!")
}
