package cloud

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/Tully9/CernAtlasSBOM/common"
	"github.com/Tully9/CernAtlasSBOM/pathlib"
)

// ReadFile reads a local path, a file:// reference, or downloads an
// http(s) resource into a temporary file and reads that.
func ReadFile(resource string) ([]byte, error) {
	if pathlib.IsFile(resource) {
		return os.ReadFile(resource)
	}
	link, err := url.ParseRequestURI(resource)
	if err != nil {
		return os.ReadFile(resource)
	}
	if link.Scheme == "file" || link.Scheme == "" || pathlib.IsFile(link.Path) {
		return os.ReadFile(link.Path)
	}
	tempfile := filepath.Join(pathlib.TempDir(), fmt.Sprintf("temp%x.part", common.When))
	defer os.Remove(tempfile)
	err = Download(resource, tempfile, 60*time.Second)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(tempfile)
}

func Download(url, filename string, timeout time.Duration) error {
	if pathlib.Exists(filename) {
		err := os.Remove(filename)
		if err != nil {
			return err
		}
	}

	client := &http.Client{Timeout: timeout}
	request, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return err
	}
	request.Header.Add("User-Agent", common.UserAgent())
	response, err := client.Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("Downloading %q failed, reason: %q!", url, response.Status)
	}

	out, err := pathlib.Create(filename)
	if err != nil {
		return err
	}
	defer out.Close()

	common.Debug("Downloading %s <%s> -> %s", url, response.Status, filename)

	bytecount, err := io.Copy(out, response.Body)
	if err != nil {
		return err
	}
	common.Trace("downloaded %d bytes to %s", bytecount, filename)

	return out.Sync()
}
