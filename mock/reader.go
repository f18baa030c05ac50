package mock_generator

import (
	"encoding/json"
	"os"

	"story-production-api/application/ports/outbound"
)

type FixtureReader interface {
	ReadScript(fileName string) (*MockScript, error)
	ReadMedia(fileName string) ([]MockMedia, error)
}

type fileFixtureReader struct {
	logger outbound.LoggerPort
}

func NewFileFixtureReader(logger outbound.LoggerPort) FixtureReader {
	return &fileFixtureReader{
		logger: logger,
	}
}

func (f *fileFixtureReader) ReadScript(fileName string) (*MockScript, error) {
	var script MockScript
	if err := f.decodeJSONFile(fileName, &script); err != nil {
		return nil, err
	}
	return &script, nil
}

func (f *fileFixtureReader) ReadMedia(fileName string) ([]MockMedia, error) {
	var media []MockMedia
	if err := f.decodeJSONFile(fileName, &media); err != nil {
		return nil, err
	}
	return media, nil
}

func (f *fileFixtureReader) decodeJSONFile(fileName string, target interface{}) error {
	file, err := os.Open(fileName)
	if err != nil {
		return err
	}
	defer func(file *os.File) {
		err := file.Close()
		if err != nil {
			f.logger.Error(err, "failed to close file")
		}
	}(file)

	if err := json.NewDecoder(file).Decode(target); err != nil {
		f.logger.Error(err, "failed to decode json")
		return err
	}

	return nil
}
