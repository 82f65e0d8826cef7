package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

var (
	optURL      = flag.String("url", "http://localhost:8080", "base URL of a running counter service")
	optRequests = flag.Int("n", 50, "number of concurrent increments")
)

func main() {
	flag.Parse()

	endpoint := *optURL + "/api/increment"
	client := &http.Client{Timeout: 5 * time.Second}

	// Baseline increment so the final value can be checked against the
	// request count. Assumes no other clients are hitting the service.
	start, err := increment(client, endpoint)
	if err != nil {
		log.Fatalf("failed to reach %s: %v", endpoint, err)
	}

	var successCount atomic.Int32
	var failCount atomic.Int32
	var maxSeen atomic.Int64

	var wg sync.WaitGroup
	begin := time.Now()

	for i := 0; i < *optRequests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			value, err := increment(client, endpoint)
			if err != nil {
				failCount.Add(1)
				return
			}
			successCount.Add(1)

			for {
				seen := maxSeen.Load()
				if value <= seen || maxSeen.CompareAndSwap(seen, value) {
					break
				}
			}
		}()
	}

	wg.Wait()
	elapsed := time.Since(begin)

	expected := start + int64(successCount.Load())

	fmt.Println("========== LOAD TEST RESULTS ==========")
	fmt.Printf("Requests:        %d\n", *optRequests)
	fmt.Printf("Successful:      %d\n", successCount.Load())
	fmt.Printf("Failed:          %d\n", failCount.Load())
	fmt.Printf("Duration:        %v\n", elapsed)
	fmt.Printf("Counter before:  %d\n", start)
	fmt.Printf("Highest seen:    %d\n", maxSeen.Load())
	fmt.Println("=======================================")

	if maxSeen.Load() == expected {
		fmt.Printf("PASS: counter advanced by exactly %d\n", successCount.Load())
	} else {
		fmt.Printf("FAIL: expected final value %d, highest seen %d\n", expected, maxSeen.Load())
	}
}

func increment(client *http.Client, endpoint string) (int64, error) {
	resp, err := client.Get(endpoint)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var body struct {
		Counter int64 `json:"counter"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, err
	}
	return body.Counter, nil
}
