package codec

/**
 * codec.go - config encoding / decoding utils
 */

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

/**
 * Encode data based on format
 * Currently supported: toml, json and yaml
 */
func Encode(in interface{}, out *string, format string) error {

	switch format {
	case "toml":
		buf := new(bytes.Buffer)
		if err := toml.NewEncoder(buf).Encode(in); err != nil {
			return err
		}
		*out = buf.String()
		return nil
	case "json":
		buf, err := json.MarshalIndent(in, "", "    ")
		if err != nil {
			return err
		}
		*out = string(buf)
		return nil
	case "yaml", "yml":
		buf, err := yaml.Marshal(in)
		if err != nil {
			return err
		}
		*out = string(buf)
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

/**
 * Decode data based on format
 * Currently supported: toml, json and yaml
 */
func Decode(data string, out interface{}, format string) error {

	switch format {
	case "toml":
		_, err := toml.Decode(data, out)
		return err
	case "json":
		return json.Unmarshal([]byte(data), out)
	case "yaml", "yml":
		return yaml.Unmarshal([]byte(data), out)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
