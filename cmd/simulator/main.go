package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
)

// Depot activity simulator. Logs in as the administrator and replays a
// plausible day at the depot against the API: a pool of drivers and
// trucks, periodic consumptions, and the occasional tanker delivery.

type driver struct {
	Name          string `json:"name"`
	LicenseNumber string `json:"license_number"`
}

type truck struct {
	PlateNumber  string  `json:"plate_number"`
	Model        string  `json:"model"`
	Year         int     `json:"year"`
	TankCapacity float64 `json:"tank_capacity"`
}

type transaction struct {
	Kind          string  `json:"kind"`
	FuelKind      string  `json:"fuel_kind"`
	Amount        float64 `json:"amount"`
	PricePerLiter float64 `json:"price_per_liter,omitempty"`
	DriverID      string  `json:"driver_id,omitempty"`
	TruckID       string  `json:"truck_id,omitempty"`
	Notes         string  `json:"notes,omitempty"`
}

var driverNames = []string{
	"Mathieu Leroy", "Karim Bensaid", "Paulo Ferreira", "Jean-Marc Dubois",
	"Sergiu Ionescu", "Hakim Cherif", "Tomasz Kowalski", "Luc Moreau",
}

var truckModels = []string{
	"Renault T480", "Volvo FH16", "Scania R450", "MAN TGX", "DAF XF",
}

var authToken string

func authorizedRequest(method, url string, body *bytes.Buffer) (*http.Response, error) {
	if body == nil {
		body = &bytes.Buffer{}
	}
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}
	client := &http.Client{Timeout: 10 * time.Second}
	return client.Do(req)
}

func login(apiURL string) error {
	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "mathieu"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "mathieu5442"
	}

	payload, _ := json.Marshal(map[string]string{"username": username, "password": password})
	resp, err := http.Post(apiURL+"/auth/login", "application/json", bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("login request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("login failed with status: %d", resp.StatusCode)
	}

	var result struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode login response: %w", err)
	}
	authToken = result.Token
	return nil
}

func createEntity(url string, payload interface{}) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	resp, err := authorizedRequest(http.MethodPost, url, bytes.NewBuffer(data))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("creation failed with status: %d", resp.StatusCode)
	}
	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	id, ok := result["id"].(string)
	if !ok {
		return "", fmt.Errorf("invalid ID in response")
	}
	return id, nil
}

func postTransaction(apiURL string, txn transaction) error {
	data, err := json.Marshal(txn)
	if err != nil {
		return err
	}
	resp, err := authorizedRequest(http.MethodPost, apiURL+"/transactions", bytes.NewBuffer(data))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("transaction failed with status: %d", resp.StatusCode)
	}
	return nil
}

func main() {
	apiURL := os.Getenv("API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080/api"
	}

	if err := login(apiURL); err != nil {
		log.Fatalf("Failed to log in: %v", err)
	}
	log.Info("Logged in as administrator")

	numDrivers := 4
	if v := os.Getenv("SIM_DRIVERS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			numDrivers = parsed
		}
	}

	var driverIDs, truckIDs []string
	for i := 0; i < numDrivers; i++ {
		name := driverNames[rand.Intn(len(driverNames))]
		id, err := createEntity(apiURL+"/drivers", driver{
			Name:          name,
			LicenseNumber: fmt.Sprintf("C1-%06d", rand.Intn(1000000)),
		})
		if err != nil {
			log.Fatalf("Failed to create driver: %v", err)
		}
		log.WithFields(log.Fields{"driver_id": id, "name": name}).Info("Created driver")
		driverIDs = append(driverIDs, id)

		model := truckModels[rand.Intn(len(truckModels))]
		tid, err := createEntity(apiURL+"/trucks", truck{
			PlateNumber:  fmt.Sprintf("%c%c-%03d-%c%c", 'A'+rand.Intn(26), 'A'+rand.Intn(26), rand.Intn(1000), 'A'+rand.Intn(26), 'A'+rand.Intn(26)),
			Model:        model,
			Year:         2018 + rand.Intn(7),
			TankCapacity: 400 + float64(rand.Intn(5))*100,
		})
		if err != nil {
			log.Fatalf("Failed to create truck: %v", err)
		}
		log.WithFields(log.Fields{"truck_id": tid, "model": model}).Info("Created truck")
		truckIDs = append(truckIDs, tid)
	}

	// Start with full-ish tanks so consumptions have stock to draw on.
	for _, refill := range []transaction{
		{Kind: "refill", FuelKind: "diesel", Amount: 4000, PricePerLiter: 1.45, Notes: "initial delivery"},
		{Kind: "refill", FuelKind: "adblue", Amount: 800, PricePerLiter: 0.72, Notes: "initial delivery"},
	} {
		if err := postTransaction(apiURL, refill); err != nil {
			log.Fatalf("Failed to post initial refill: %v", err)
		}
		log.WithFields(log.Fields{"fuel_kind": refill.FuelKind, "amount": refill.Amount}).Info("Posted refill")
	}

	interval := 5 * time.Second
	if v := os.Getenv("SIM_INTERVAL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			interval = parsed
		}
	}

	for tick := 0; ; tick++ {
		i := rand.Intn(len(driverIDs))
		txn := transaction{
			Kind:     "consumption",
			FuelKind: "diesel",
			Amount:   80 + rand.Float64()*220,
			DriverID: driverIDs[i],
			TruckID:  truckIDs[i],
		}
		if rand.Float64() < 0.2 {
			txn.FuelKind = "adblue"
			txn.Amount = 10 + rand.Float64()*30
		}
		// Roughly one tanker delivery per fifty consumptions.
		if tick > 0 && tick%50 == 0 {
			txn = transaction{
				Kind:          "refill",
				FuelKind:      "diesel",
				Amount:        2000 + rand.Float64()*2000,
				PricePerLiter: 1.3 + rand.Float64()*0.4,
				Notes:         "tanker delivery",
			}
		}

		if err := postTransaction(apiURL, txn); err != nil {
			log.WithError(err).Warn("Failed to post transaction")
		} else {
			log.WithFields(log.Fields{
				"kind":      txn.Kind,
				"fuel_kind": txn.FuelKind,
				"amount":    fmt.Sprintf("%.1f", txn.Amount),
			}).Info("Posted transaction")
		}
		time.Sleep(interval)
	}
}
