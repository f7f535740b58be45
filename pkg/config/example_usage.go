package config

// Example usage of the configuration system:
//
// 1. Load configuration with all sources:
//
//     config, err := config.Load("", nil)
//     if err != nil {
//         log.Fatal(err)
//     }
//
// 2. Load with custom config file:
//
//     config, err := config.Load("/path/to/config.yaml", nil)
//     if err != nil {
//         log.Fatal(err)
//     }
//
// 3. Load with command line flags:
//
//     flags := map[string]interface{}{
//         "save": "./my-cache",
//         "interval": 3 * time.Second,
//         "show-browser": true,
//         "log-level": "debug",
//     }
//     config, err := config.Load("", flags)
//     if err != nil {
//         log.Fatal(err)
//     }
//
// 4. Programmatic configuration:
//
//     config := config.DefaultConfig()
//     config.SocialInsight.Email = "you@example.com"
//     config.Storage.SaveDir = "./my-cache"
//
//     if err := config.Validate(); err != nil {
//         log.Fatal(err)
//     }
//
// 5. Save configuration to file:
//
//     if err := config.Save(".siscraper.yaml"); err != nil {
//         log.Fatal(err)
//     }
//
// 6. Environment variables:
//
//     export SISCRAPER_EMAIL="you@example.com"
//     export SISCRAPER_PASSWORD="secret"
//     export SISCRAPER_SAVE_DIR="./my-cache"
//     export SISCRAPER_REQUEST_INTERVAL="3s"
//     export SISCRAPER_SETTLE_TIMEOUT="20s"
//     export SISCRAPER_HEADLESS="false"
//     export SISCRAPER_LOG_LEVEL="debug"
//
// 7. Using configuration in your application:
//
//     // Resolve the cache directory for a keyword
//     cacheDir := config.CacheDir("golang")
//
//     // Build the pacer from the fetch settings
//     pacer := ratelimit.NewFixedInterval(config.Fetch.RequestInterval.Std())
//
//     // Pass logging settings to the logger
//     err := logger.Initialize(&config.Logging)
