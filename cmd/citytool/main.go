package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"

	"healthycity-service/internal/config"
)

// citytool is the presentation layer distilled to a CLI: it calls the service
// with a long timeout (the analytics platform can be slow), prints the JSON
// payload, and reports the timeout case with its own message while every
// other failure collapses into a generic API error.

var metrics = map[string]bool{
	"greencover": true,
	"heatmap":    true,
	"floodrisk":  true,
	"airquality": true,
	"overview":   true,
	"reportcard": true,
	"simulate":   true,
}

func main() {
	log.SetFlags(0)
	_ = godotenv.Load()

	base := flag.String("base", config.Get("API_BASE_URL", "http://127.0.0.1:8000"), "service base URL")
	city := flag.String("city", "London", "city name")
	metric := flag.String("metric", "overview", "one of: greencover heatmap floodrisk airquality overview reportcard simulate")
	intervention := flag.String("intervention", "Parks", "simulate only: intervention type")
	scale := flag.String("scale", "Medium", "simulate only: intervention scale")
	timeout := flag.Duration("timeout", 180*time.Second, "request timeout")
	flag.Parse()

	if !metrics[*metric] {
		fmt.Fprintf(os.Stderr, "unknown metric %q\n", *metric)
		flag.Usage()
		os.Exit(2)
	}

	u := fmt.Sprintf("%s/city/%s/%s", *base, url.PathEscape(*city), *metric)
	if *metric == "simulate" {
		q := url.Values{}
		q.Set("intervention", *intervention)
		q.Set("scale", *scale)
		u += "?" + q.Encode()
	}

	client := &http.Client{Timeout: *timeout}

	resp, err := client.Get(u)
	if err != nil {
		if isTimeout(err) {
			log.Fatal("Connection Timeout: the request to the backend took too long. The analytics platform might be busy. Please try again later.")
		}
		log.Fatalf("API Error: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Fatalf("API Error: %v", err)
	}

	if resp.StatusCode >= 400 {
		var e struct {
			Detail string `json:"detail"`
		}
		if json.Unmarshal(body, &e) == nil && e.Detail != "" {
			log.Fatalf("API Error: %s", e.Detail)
		}
		log.Fatalf("API Error: status %d", resp.StatusCode)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err != nil {
		fmt.Println(string(body))
		return
	}
	fmt.Println(pretty.String())
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
