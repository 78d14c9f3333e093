package urdf

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
)

// Parse decodes a URDF document from raw XML bytes.
func Parse(data []byte) (*Robot, error) {
	var robot Robot
	if err := xml.Unmarshal(data, &robot); err != nil {
		return nil, fmt.Errorf("urdf: parse: %w", err)
	}
	return &robot, nil
}

// ParseReader decodes a URDF document from a reader.
func ParseReader(r io.Reader) (*Robot, error) {
	var robot Robot
	if err := xml.NewDecoder(r).Decode(&robot); err != nil {
		return nil, fmt.Errorf("urdf: parse: %w", err)
	}
	return &robot, nil
}

// ReadFile loads and parses a URDF document from disk.
func ReadFile(path string) (*Robot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("urdf: read %s: %w", path, err)
	}
	return Parse(data)
}

// WriteString serializes a robot description to its XML text form.
func WriteString(robot *Robot) (string, error) {
	body, err := xml.MarshalIndent(robot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("urdf: marshal: %w", err)
	}
	return xml.Header + string(body) + "\n", nil
}

// Write serializes a robot description to the given writer.
func Write(w io.Writer, robot *Robot) error {
	s, err := WriteString(robot)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, s); err != nil {
		return fmt.Errorf("urdf: write: %w", err)
	}
	return nil
}
