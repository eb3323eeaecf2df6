package core

import glog "github.com/goliatone/go-logger/glog"

var (
	_ Discoverer      = (*StaticDiscoverer)(nil)
	_ LicenseChecker  = StaticLicenseChecker{}
	_ Preferences     = configPreferences{}
	_ ConfigProvider  = (*CfgxConfigProvider)(nil)
	_ OptionsResolver = GoOptionsResolver{}

	_ Logger         = glog.Nop()
	_ LoggerProvider = glog.ProviderFromLogger(glog.Nop())
)
