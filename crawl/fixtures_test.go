package crawl_test

const missingPageContentHTML = `<div class='foo-class'></div>`

const missingTwikiLinksHTML = `<div class='page-content'></div>`

const standardHTML = `<div class='page-content'><ul><li>` +
	`<a class="twikilink" href="http://tvtropes.org/pmwiki/pmwiki.php/Main/FooBar" title="http://tvtropes.org/pmwiki/pmwiki.php/Main/FooBar">Foo Bar</a>` +
	`</li><li>` +
	`<a class="twikilink" href="http://tvtropes.org/pmwiki/pmwiki.php/Main/BarFoo" title="http://tvtropes.org/pmwiki/pmwiki.php/Main/BarFoo">Bar Foo</a>` +
	`</li></ul>` +
	`<input type="hidden" id="groupname-hidden" value="Film"/>` +
	`<input type="hidden" id="title-hidden" value="FooBar"/>` +
	`</div>`

const missingTitleHTML = `<div class='page-content'><ul><li>` +
	`<a class="twikilink" href="http://tvtropes.org/pmwiki/pmwiki.php/Main/FooBar">Foo Bar</a>` +
	`</li></ul>` +
	`<input type="hidden" id="groupname-hidden" value="Film"/>` +
	`</div>`
