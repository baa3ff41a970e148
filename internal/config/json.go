package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type jsonClientConfig struct {
	Exchange struct {
		Endpoint       string   `json:"endpoint"`
		Username       string   `json:"username"`
		Password       string   `json:"password"`
		RequestTimeout Duration `json:"request_timeout"`
		Retries        uint     `json:"retries"`
	} `json:"exchange,omitempty"`

	Logging struct {
		Level string `json:"level"`
	} `json:"logging,omitempty"`
}

func parseJSON(jsonFilePath string) (*ClientConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg jsonClientConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &ClientConfig{
		Exchange: Exchange{
			Endpoint:       jsonCfg.Exchange.Endpoint,
			Username:       jsonCfg.Exchange.Username,
			Password:       jsonCfg.Exchange.Password,
			RequestTimeout: time.Duration(jsonCfg.Exchange.RequestTimeout),
			Retries:        jsonCfg.Exchange.Retries,
		},
		Logging: Logging{
			Level: jsonCfg.Logging.Level,
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
