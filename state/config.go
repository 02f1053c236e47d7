package state

import (
	"path/filepath"

	"github.com/hashicorp/hcl"
	"github.com/juju/errors"
	"github.com/temoto/hypertap/hardware/input"
	"github.com/temoto/hypertap/helpers"
	"github.com/temoto/hypertap/log2"
)

const DefaultConfigName = "hypertap.hcl"

type Config struct {
	// includeSeen contains absolute paths to prevent include loops
	includeSeen map[string]struct{}
	// only used for Unmarshal, do not access
	XXX_Include []ConfigSource `hcl:"include"`

	LogDebug bool `hcl:"log_debug"`

	Input struct {
		Dir           string `hcl:"dir"`
		Device        string `hcl:"device"`
		SkipInfo      bool   `hcl:"skip_info"`
		SkipGrabCheck bool   `hcl:"skip_grab_check"`
	} `hcl:"input"`

	Report struct {
		QuietLive bool `hcl:"quiet_live"`
	} `hcl:"report"`
}

type ConfigSource struct {
	Name     string `hcl:"name,key"`
	Optional bool   `hcl:"optional"`
}

func (c *Config) read(log *log2.Log, fs FullReader, source ConfigSource, errs *[]error) {
	norm := fs.Normalize(source.Name)
	if _, ok := c.includeSeen[norm]; ok {
		*errs = append(*errs, errors.Errorf("config duplicate source=%s", source.Name))
		return
	}
	log.Debugf("config reading source='%s' path=%s", source.Name, norm)
	c.includeSeen[norm] = struct{}{}

	bs, err := fs.ReadAll(norm)
	if bs == nil && err == nil {
		if !source.Optional {
			*errs = append(*errs, errors.NotFoundf("config required name=%s path=%s", source.Name, norm))
		}
		return
	}
	if err != nil {
		*errs = append(*errs, errors.Annotatef(err, "config source=%s", source.Name))
		return
	}

	if err = hcl.Unmarshal(bs, c); err != nil {
		err = errors.Annotatef(err, "config unmarshal source=%s content='%s'", source.Name, string(bs))
		*errs = append(*errs, err)
		return
	}

	var includes []ConfigSource
	includes, c.XXX_Include = c.XXX_Include, nil
	for _, include := range includes {
		includeNorm := fs.Normalize(include.Name)
		if _, ok := c.includeSeen[includeNorm]; ok {
			*errs = append(*errs, errors.Errorf("config include loop: from=%s include=%s", source.Name, include.Name))
			continue
		}
		c.read(log, fs, include, errs)
	}
}

func (c *Config) setDefaults() {
	if c.Input.Dir == "" {
		c.Input.Dir = input.DefaultDir
	}
}

// ReadConfig reads sources in order, later values overwrite earlier.
// Empty name means default config file, which is optional.
func ReadConfig(log *log2.Log, fs FullReader, name string) (*Config, error) {
	source := ConfigSource{Name: name}
	if name == "" {
		source = ConfigSource{Name: DefaultConfigName, Optional: true}
	}
	if osfs, ok := fs.(*OsFullReader); ok {
		dir, base := filepath.Split(source.Name)
		osfs.SetBase(dir)
		source.Name = base
	}

	c := &Config{includeSeen: make(map[string]struct{})}
	errs := make([]error, 0, 4)
	c.read(log, fs, source, &errs)
	c.setDefaults()
	return c, helpers.FoldErrors(errs)
}
