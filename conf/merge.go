package conf

import "dario.cat/mergo"

// ApplyDefaults folds server-wide defaults (Gzip threshold, Cors policy)
// into every Site that doesn't set its own value, and fills in the
// process-wide defaults documented in the Default* constants (addresses and
// the server-level connect timeout).
// It mutates b in place and must run once, after YAML decode and before the
// site map is built.
func ApplyDefaults(b *Bootstrap) error {
	if b.Server == nil {
		b.Server = &Server{}
	}
	if b.Server.Addr == "" {
		b.Server.Addr = DefaultAddr
	}
	if b.Server.AdminAddr == "" {
		b.Server.AdminAddr = DefaultAdminAddr
	}
	if b.Server.Timeouts == nil {
		b.Server.Timeouts = &Timeouts{}
	}
	if b.Server.Timeouts.Connect == 0 {
		b.Server.Timeouts.Connect = DefaultConnectTimeout
	}

	for _, site := range b.Sites {
		if site.Gzip == nil && b.Server.Gzip != nil {
			merged := *b.Server.Gzip
			site.Gzip = &merged
		} else if site.Gzip != nil && b.Server.Gzip != nil {
			if err := mergo.Merge(site.Gzip, b.Server.Gzip); err != nil {
				return err
			}
		}
		if site.Gzip != nil && site.Gzip.Threshold == 0 {
			site.Gzip.Threshold = DefaultGzipThreshold
		}

		if site.Cors == nil && b.Server.Cors != nil {
			merged := *b.Server.Cors
			site.Cors = &merged
		} else if site.Cors != nil && b.Server.Cors != nil {
			if err := mergo.Merge(site.Cors, b.Server.Cors); err != nil {
				return err
			}
		}
	}

	return nil
}
