package settings

import (
	"fmt"
	"strings"
	"time"

	"github.com/Tully9/CernAtlasSBOM/common"
	"github.com/Tully9/CernAtlasSBOM/pathlib"
	"github.com/spf13/viper"
	yaml "gopkg.in/yaml.v2"
)

// Project describes where one project line's source material lives.
// Paths are resolved by the collaborating checkout/build scripts
// before a run; this tool only reads them.
type Project struct {
	Name            string `yaml:"name" mapstructure:"name"`
	Manifest        string `yaml:"manifest,omitempty" mapstructure:"manifest"`
	BuildTree       string `yaml:"buildTree,omitempty" mapstructure:"buildTree"`
	FrozenList      string `yaml:"frozenList,omitempty" mapstructure:"frozenList"`
	FallbackTree    string `yaml:"fallbackTree,omitempty" mapstructure:"fallbackTree"`
	BuildLog        string `yaml:"buildLog,omitempty" mapstructure:"buildLog"`
	CatalogRelease  string `yaml:"catalogRelease,omitempty" mapstructure:"catalogRelease"`
	CatalogPlatform string `yaml:"catalogPlatform,omitempty" mapstructure:"catalogPlatform"`
	CatalogSnapshot string `yaml:"catalogSnapshot,omitempty" mapstructure:"catalogSnapshot"`
}

type Settings struct {
	CatalogEndpoint string            `yaml:"catalogEndpoint" mapstructure:"catalogEndpoint"`
	CatalogTemplate string            `yaml:"catalogTemplate" mapstructure:"catalogTemplate"`
	Precedence      []string          `yaml:"precedence" mapstructure:"precedence"`
	Aliases         map[string]string `yaml:"aliases,omitempty" mapstructure:"aliases"`
	TimeoutSeconds  int               `yaml:"timeoutSeconds" mapstructure:"timeoutSeconds"`
	LedgerRoot      string            `yaml:"ledgerRoot" mapstructure:"ledgerRoot"`
	Projects        []Project         `yaml:"projects" mapstructure:"projects"`
}

var (
	Global     *Settings
	configFile string
)

// Defaults is the built-in settings document; a settings file only
// needs to override what differs.
func Defaults() *Settings {
	return &Settings{
		CatalogEndpoint: "https://lcginfo.cern.ch",
		CatalogTemplate: "/release_packages/%s/%s/",
		Precedence:      []string{"catalog-page", "frozen-list", "cmake-tree", "manifest"},
		Aliases:         map[string]string{},
		TimeoutSeconds:  30,
		LedgerRoot:      "SBOMs",
		Projects: []Project{
			{Name: "Athena"},
			{Name: "AnalysisBase"},
			{Name: "StatAnalysis"},
		},
	}
}

// UseConfigFile points SummonSettings at an explicit settings file.
func UseConfigFile(filename string) {
	configFile = filename
}

func SummonSettings() (*Settings, error) {
	result := Defaults()

	stack := viper.New()
	stack.SetConfigType("yaml")
	stack.SetEnvPrefix("ATLASBOM")
	stack.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	stack.AutomaticEnv()
	if len(configFile) > 0 {
		stack.SetConfigFile(configFile)
	} else {
		stack.SetConfigName("atlasbom")
		stack.AddConfigPath(".")
		stack.AddConfigPath("$HOME/.atlasbom")
	}
	err := stack.ReadInConfig()
	if err != nil {
		if _, missing := err.(viper.ConfigFileNotFoundError); !missing && len(configFile) > 0 {
			return nil, err
		}
		common.Trace("No settings file in use, defaults apply.")
	} else {
		common.Debug("Using settings file %q.", stack.ConfigFileUsed())
	}
	err = stack.Unmarshal(result)
	if err != nil {
		return nil, err
	}
	Global = result
	return result, nil
}

func (it *Settings) AsYaml() ([]byte, error) {
	content, err := yaml.Marshal(it)
	if err != nil {
		return nil, err
	}
	return content, nil
}

func (it *Settings) Timeout() time.Duration {
	if it.TimeoutSeconds < 1 {
		return 30 * time.Second
	}
	return time.Duration(it.TimeoutSeconds) * time.Second
}

// CatalogPath renders the catalog page path for one release tag and
// platform, e.g. /release_packages/106b_ATLAS_1/x86_64-el9-gcc13-opt/.
func (it *Settings) CatalogPath(release, platform string) string {
	return fmt.Sprintf(it.CatalogTemplate, release, platform)
}

func (it *Settings) Project(name string) (Project, bool) {
	for _, project := range it.Projects {
		if strings.EqualFold(project.Name, name) {
			return project, true
		}
	}
	return Project{}, false
}

func (it *Settings) ProjectNames() []string {
	names := make([]string, 0, len(it.Projects))
	for _, project := range it.Projects {
		names = append(names, project.Name)
	}
	return names
}

// Validate flags settings shapes that would break a run late.
func (it *Settings) Validate() error {
	if !strings.Contains(it.CatalogTemplate, "%s") {
		return fmt.Errorf("catalogTemplate %q has no release/platform placeholders", it.CatalogTemplate)
	}
	if len(it.Precedence) == 0 {
		return fmt.Errorf("precedence list must not be empty")
	}
	for _, project := range it.Projects {
		if len(project.Name) == 0 {
			return fmt.Errorf("every project needs a name")
		}
		if len(project.Manifest) > 0 && !pathlib.IsFile(project.Manifest) {
			common.Debug("Project %s manifest %q is not present (yet).", project.Name, project.Manifest)
		}
	}
	return nil
}
