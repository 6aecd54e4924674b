/*
 * Copyright (c) 2025, FaithMatch (https://faithmatch.dev).
 *
 * FaithMatch licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package registry

import (
	"fmt"
	"sync"
	"time"

	model "github.com/faithmatch/match-data-service/internal/options/model"
	"github.com/faithmatch/match-data-service/internal/options/store"
	"github.com/faithmatch/match-data-service/internal/system/cache"
	"github.com/faithmatch/match-data-service/internal/system/config"
	"github.com/faithmatch/match-data-service/internal/system/log"
)

const snapshotCacheKey = "options:snapshot"
const defaultCacheTTL = 5 * time.Minute

// OptionLoader fetches the full active option catalog from storage.
type OptionLoader func() ([]model.Option, error)

// OptionRegistry serves the option catalog from a TTL cached snapshot,
// grouped by category. All read paths in the service go through it.
type OptionRegistry struct {
	loader OptionLoader
	cache  *cache.Cache
	mutex  sync.Mutex
}

var (
	registryInstance *OptionRegistry
	once             sync.Once
)

// NewOptionRegistry creates a registry backed by the given loader and TTL.
func NewOptionRegistry(loader OptionLoader, ttl time.Duration) *OptionRegistry {

	return &OptionRegistry{
		loader: loader,
		cache:  cache.NewCache(ttl),
	}
}

// GetOptionRegistry returns the shared registry backed by the option store.
func GetOptionRegistry() *OptionRegistry {

	once.Do(func() {
		ttl := defaultCacheTTL
		if configured := config.GetMDSRuntime().Config.Options.CacheTTLSeconds; configured > 0 {
			ttl = time.Duration(configured) * time.Second
		}
		registryInstance = NewOptionRegistry(store.GetAllOptions, ttl)
	})
	return registryInstance
}

// GetGroupedOptions returns the catalog grouped by category.
func (r *OptionRegistry) GetGroupedOptions() (map[string][]model.Option, error) {

	return r.snapshot()
}

// GetOptionsByCategory returns the active options of one category in display order.
func (r *OptionRegistry) GetOptionsByCategory(category string) ([]model.Option, error) {

	grouped, err := r.snapshot()
	if err != nil {
		return nil, err
	}
	return grouped[category], nil
}

// GetOptionLabel resolves the display label for a stored value. Unknown
// values resolve to the value itself so stale data still renders.
func (r *OptionRegistry) GetOptionLabel(category, value string) string {

	if value == "" {
		return ""
	}
	grouped, err := r.snapshot()
	if err != nil {
		log.GetLogger().Debug(fmt.Sprintf("Falling back to raw value for %s/%s", category, value), log.Error(err))
		return value
	}
	for _, option := range grouped[category] {
		if option.Value == value {
			return option.Label
		}
	}
	return value
}

// GetLocalizedLabel resolves the display label for a stored value in the
// given locale, falling back to the default label and finally to the raw
// value, mirroring GetOptionLabel.
func (r *OptionRegistry) GetLocalizedLabel(category, value, locale string) string {

	if value == "" {
		return ""
	}
	grouped, err := r.snapshot()
	if err != nil {
		log.GetLogger().Debug(fmt.Sprintf("Falling back to raw value for %s/%s", category, value), log.Error(err))
		return value
	}
	for _, option := range grouped[category] {
		if option.Value == value {
			return option.LocalizedLabel(locale)
		}
	}
	return value
}

// GetOption returns the active option of the category with the given value.
func (r *OptionRegistry) GetOption(category, value string) (*model.Option, error) {

	grouped, err := r.snapshot()
	if err != nil {
		return nil, err
	}
	for _, option := range grouped[category] {
		if option.Value == value {
			return &option, nil
		}
	}
	return nil, nil
}

// GetDefaultValue returns the value flagged as the category default, or
// empty when the category has none.
func (r *OptionRegistry) GetDefaultValue(category string) string {

	grouped, err := r.snapshot()
	if err != nil {
		log.GetLogger().Debug(fmt.Sprintf("No default resolvable for category %s", category), log.Error(err))
		return ""
	}
	for _, option := range grouped[category] {
		if option.IsDefault {
			return option.Value
		}
	}
	return ""
}

// HasValue reports whether a value is an active option of the category.
func (r *OptionRegistry) HasValue(category, value string) (bool, error) {

	grouped, err := r.snapshot()
	if err != nil {
		return false, err
	}
	for _, option := range grouped[category] {
		if option.Value == value {
			return true, nil
		}
	}
	return false, nil
}

// InvalidateCache drops the cached snapshot so the next read reloads from storage.
func (r *OptionRegistry) InvalidateCache() {

	r.cache.Delete(snapshotCacheKey)
	log.GetLogger().Debug("Option catalog cache invalidated")
}

// snapshot returns the cached grouped catalog, reloading it on expiry. The
// mutex keeps concurrent refreshes from stampeding the store.
func (r *OptionRegistry) snapshot() (map[string][]model.Option, error) {

	if cached, found := r.cache.Get(snapshotCacheKey); found {
		if grouped, ok := cached.(map[string][]model.Option); ok {
			return grouped, nil
		}
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	// Another goroutine may have refreshed while we waited for the lock.
	if cached, found := r.cache.Get(snapshotCacheKey); found {
		if grouped, ok := cached.(map[string][]model.Option); ok {
			return grouped, nil
		}
	}

	options, err := r.loader()
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]model.Option)
	for _, option := range options {
		grouped[option.Category] = append(grouped[option.Category], option)
	}
	r.cache.Set(snapshotCacheKey, grouped)
	return grouped, nil
}
